package data

import (
	"math"

	"github.com/golang/geo/r3"
)

// PointStore is the flat backing collection of a point cloud. It only grows: points are
// appended and never moved, so every PointID handed out stays valid.
type PointStore struct {
	points []Point
}

func NewPointStore(capacity int) *PointStore {
	if capacity < 0 {
		capacity = 0
	}
	return &PointStore{points: make([]Point, 0, capacity)}
}

// Wraps an existing slice. The store takes ownership of it.
func NewPointStoreFromSlice(points []Point) *PointStore {
	return &PointStore{points: points}
}

// Appends a point and returns its id
func (s *PointStore) Append(p Point) PointID {
	s.points = append(s.points, p)
	return PointID(len(s.points) - 1)
}

func (s *PointStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Returns the point with the given id. The id must have been returned by this store.
func (s *PointStore) At(id PointID) Point {
	return s.points[id]
}

// Returns a pointer to the stored point, valid until the next Append
func (s *PointStore) Ref(id PointID) *Point {
	return &s.points[id]
}

func (s *PointStore) SetColor(id PointID, c Color) {
	s.points[id].Color = c
}

func (s *PointStore) SetActive(id PointID, active bool) {
	s.points[id].Active = active
}

// Returns the underlying points. Callers must treat the slice as read only.
func (s *PointStore) Points() []Point {
	if s == nil {
		return nil
	}
	return s.points
}

// Returns the number of points still flagged as active
func (s *PointStore) ActiveLen() int {
	n := 0
	for i := range s.points {
		if s.points[i].Active {
			n++
		}
	}
	return n
}

// Computes the axis aligned bounds of all stored points. ok is false for an empty store.
func (s *PointStore) Bounds() (min, max r3.Vector, ok bool) {
	if s.Len() == 0 {
		return r3.Vector{}, r3.Vector{}, false
	}
	min = r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	max = r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := range s.points {
		p := s.points[i].Position
		min.X, max.X = math.Min(min.X, p.X), math.Max(max.X, p.X)
		min.Y, max.Y = math.Min(min.Y, p.Y), math.Max(max.Y, p.Y)
		min.Z, max.Z = math.Min(min.Z, p.Z), math.Max(max.Z, p.Z)
	}
	return min, max, true
}
