package geometry

import (
	"math"

	"github.com/golang/geo/r3"
)

// Returns the perpendicular distance from p to the infinite line through lineStart and lineEnd,
// |cross(p-lineStart, lineEnd-lineStart)| / |lineEnd-lineStart|. A zero length line yields +Inf
// so that callers keeping a running minimum simply ignore it.
func DistanceToLine(p, lineStart, lineEnd r3.Vector) float64 {
	line := lineEnd.Sub(lineStart)
	length := line.Norm()
	if length == 0 {
		return math.Inf(1)
	}
	return p.Sub(lineStart).Cross(line).Norm() / length
}
