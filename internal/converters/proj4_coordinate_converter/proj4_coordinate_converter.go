package proj4_coordinate_converter

import (
	"math"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	proj "github.com/xeonx/proj4"

	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// Reprojects coordinates with the proj4 library. Projections are initialized lazily and cached
// per EPSG code. proj4 handles are not safe for concurrent use, transforms are serialized.
type proj4CoordinateConverter struct {
	projections map[int]*proj.Proj
	sync.Mutex
}

func NewProj4CoordinateConverter() converters.CoordinateConverter {
	return &proj4CoordinateConverter{
		projections: make(map[int]*proj.Proj),
	}
}

func (cc *proj4CoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error) {
	coords := []r3.Vector{coord}
	if err := cc.ConvertCoordinatesSrid(sourceSrid, targetSrid, coords); err != nil {
		return coord, err
	}
	return coords[0], nil
}

func (cc *proj4CoordinateConverter) ConvertCoordinatesSrid(sourceSrid int, targetSrid int, coords []r3.Vector) error {
	if sourceSrid == targetSrid || len(coords) == 0 {
		return nil
	}

	cc.Lock()
	defer cc.Unlock()

	src, err := cc.getProjection(sourceSrid)
	if err != nil {
		return err
	}
	dst, err := cc.getProjection(targetSrid)
	if err != nil {
		return err
	}

	x := make([]float64, len(coords))
	y := make([]float64, len(coords))
	z := make([]float64, len(coords))
	for i, c := range coords {
		x[i], y[i], z[i] = c.X, c.Y, c.Z
		if converters.IsGeographic(sourceSrid) {
			x[i] *= degToRad
			y[i] *= degToRad
		}
	}

	if err := proj.TransformRaw(src, dst, x, y, z); err != nil {
		return errors.Wrapf(err, "error converting from srid %d to %d", sourceSrid, targetSrid)
	}

	for i := range coords {
		if converters.IsGeographic(targetSrid) {
			x[i] *= radToDeg
			y[i] *= radToDeg
		}
		coords[i] = r3.Vector{X: x[i], Y: y[i], Z: z[i]}
	}
	return nil
}

// Releases all projection objects
func (cc *proj4CoordinateConverter) Cleanup() {
	cc.Lock()
	defer cc.Unlock()
	for code, projection := range cc.projections {
		projection.Close()
		delete(cc.projections, code)
	}
}

// Returns the projection of the EPSG code, initializing it on first use
func (cc *proj4CoordinateConverter) getProjection(code int) (*proj.Proj, error) {
	if projection, ok := cc.projections[code]; ok {
		return projection, nil
	}
	def, err := converters.EpsgDefinition(code)
	if err != nil {
		return nil, err
	}
	projection, err := proj.InitPlus(def)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to initialize projection for epsg %d", code)
	}
	glog.V(1).Infof("initialized projection epsg:%d %s", code, def)
	cc.projections[code] = projection
	return projection, nil
}
