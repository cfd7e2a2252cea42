package converters

import "github.com/golang/geo/r3"

type CoordinateConverter interface {
	ConvertCoordinateSrid(sourceSrid int, targetSrid int, coord r3.Vector) (r3.Vector, error)
	// Converts the coordinates in place
	ConvertCoordinatesSrid(sourceSrid int, targetSrid int, coords []r3.Vector) error
	Cleanup()
}
