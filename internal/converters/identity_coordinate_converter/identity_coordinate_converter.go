package identity_coordinate_converter

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ecopia-map/pointcloud_viewer/internal/converters"
)

// Converter used when no reprojection is requested. It only accepts conversions between
// identical SRIDs.
type IdentityCoordinateConverter struct{}

func NewIdentityCoordinateConverter() converters.CoordinateConverter {
	return &IdentityCoordinateConverter{}
}

func (c *IdentityCoordinateConverter) ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error) {
	if sourceSrid != targetSrid {
		return coord, errors.Errorf("cannot convert from srid %d to %d without a projection library", sourceSrid, targetSrid)
	}
	return coord, nil
}

func (c *IdentityCoordinateConverter) ConvertCoordinatesSrid(sourceSrid int, targetSrid int, coords []r3.Vector) error {
	if sourceSrid != targetSrid {
		return errors.Errorf("cannot convert from srid %d to %d without a projection library", sourceSrid, targetSrid)
	}
	return nil
}

func (c *IdentityCoordinateConverter) Cleanup() {}
