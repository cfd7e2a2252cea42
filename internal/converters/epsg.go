package converters

import (
	"fmt"

	"github.com/pkg/errors"
)

var epsgDefinitions = map[int]string{
	4326:  "+proj=longlat +datum=WGS84 +no_defs",
	4978:  "+proj=geocent +datum=WGS84 +units=m +no_defs",
	3395:  "+proj=merc +lon_0=0 +k=1 +x_0=0 +y_0=0 +datum=WGS84 +units=m +no_defs",
	3857:  "+proj=merc +a=6378137 +b=6378137 +lat_ts=0.0 +lon_0=0.0 +x_0=0.0 +y_0=0 +k=1.0 +units=m +nadgrids=@null +wktext +no_defs",
	4490:  "+proj=longlat +ellps=GRS80 +no_defs",
	2154:  "+proj=lcc +lat_1=49 +lat_2=44 +lat_0=46.5 +lon_0=3 +x_0=700000 +y_0=6600000 +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +units=m +no_defs",
	27700: "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy +datum=OSGB36 +units=m +no_defs",
}

// Returns the proj4 definition string of an EPSG code. WGS84 UTM zones (326xx and 327xx) are
// generated, the other supported codes come from a small built-in table.
func EpsgDefinition(code int) (string, error) {
	if def, ok := epsgDefinitions[code]; ok {
		return def, nil
	}
	if zone := code - 32600; zone >= 1 && zone <= 60 {
		return fmt.Sprintf("+proj=utm +zone=%d +datum=WGS84 +units=m +no_defs", zone), nil
	}
	if zone := code - 32700; zone >= 1 && zone <= 60 {
		return fmt.Sprintf("+proj=utm +zone=%d +south +datum=WGS84 +units=m +no_defs", zone), nil
	}
	return "", errors.Errorf("epsg code %d not supported", code)
}

// Reports whether coordinates of the EPSG code are angles
func IsGeographic(code int) bool {
	return code == 4326 || code == 4490
}
