package data

import (
	"github.com/golang/geo/r3"
	"github.com/x448/float16"
)

// PointID addresses a point inside a PointStore. IDs are stable for the lifetime of the store.
type PointID int32

// NoPoint is the zero value returned when no point could be addressed
const NoPoint PointID = -1

// Display color of a point, stored as three half precision channels in [0,1]
type Color [3]float16.Float16

// Builds a display Color from three float channels
func NewColor(r, g, b float64) Color {
	return Color{
		float16.Fromfloat32(float32(r)),
		float16.Fromfloat32(float32(g)),
		float16.Fromfloat32(float32(b)),
	}
}

// Returns the color channels as float32 values
func (c Color) RGB() (float32, float32, float32) {
	return c[0].Float32(), c[1].Float32(), c[2].Float32()
}

// Contains data of a Point Cloud Point, namely the normalized X,Y,Z coords, the raw
// R,G,B color components as read from the source, the display color and the classification
type Point struct {
	Position       r3.Vector
	RawColor       [3]uint16
	Color          Color
	Classification uint8

	// false when the point has been soft deleted
	Active bool
}

// Builds a new active Point from the given normalized coordinates, raw colors and classification value
func NewPoint(x, y, z float64, r, g, b uint16, classification uint8) Point {
	return Point{
		Position:       r3.Vector{X: x, Y: y, Z: z},
		RawColor:       [3]uint16{r, g, b},
		Classification: classification,
		Active:         true,
	}
}
