package geometry

import "github.com/golang/geo/r3"

// Axis aligned box described by its min and max corners. Mid is cached as it drives octant selection.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
	Mid r3.Vector
}

func NewBoundingBox(min, max r3.Vector) *BoundingBox {
	return &BoundingBox{
		Min: min,
		Max: max,
		Mid: min.Add(max).Mul(0.5),
	}
}

// Returns the index of the octant of split that contains p. bit0 is set when X is below or on the
// split plane, bit1 for Y and bit2 for Z, so boundary points always take the "below" branch.
func OctantCode(p, split r3.Vector) uint8 {
	var code uint8
	if p.X <= split.X {
		code |= 1
	}
	if p.Y <= split.Y {
		code |= 2
	}
	if p.Z <= split.Z {
		code |= 4
	}
	return code
}

// Returns the octant of the box that contains p
func (b *BoundingBox) OctantOf(p r3.Vector) uint8 {
	return OctantCode(p, b.Mid)
}

// Returns the bounding box of the octant identified by code, see OctantCode
func (b *BoundingBox) Octant(code uint8) *BoundingBox {
	min, max := b.Mid, b.Max
	if code&1 != 0 {
		min.X, max.X = b.Min.X, b.Mid.X
	}
	if code&2 != 0 {
		min.Y, max.Y = b.Min.Y, b.Mid.Y
	}
	if code&4 != 0 {
		min.Z, max.Z = b.Min.Z, b.Mid.Z
	}
	return NewBoundingBox(min, max)
}

func (b *BoundingBox) Size() r3.Vector {
	return b.Max.Sub(b.Min)
}

// Returns the length of the longest edge of the box
func (b *BoundingBox) MaxEdge() float64 {
	s := b.Size()
	edge := s.X
	if s.Y > edge {
		edge = s.Y
	}
	if s.Z > edge {
		edge = s.Z
	}
	return edge
}

func (b *BoundingBox) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Returns the 8 corners of the box. Corner i takes Max on X when bit0 of i is set,
// on Y for bit1 and on Z for bit2.
func (b *BoundingBox) Corners() [8]r3.Vector {
	var corners [8]r3.Vector
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		corners[i] = c
	}
	return corners
}

// Returns the 12 edges of the box as pairs of corners
func (b *BoundingBox) Edges() [12][2]r3.Vector {
	c := b.Corners()
	return [12][2]r3.Vector{
		// bottom face
		{c[0], c[1]}, {c[1], c[3]}, {c[3], c[2]}, {c[2], c[0]},
		// top face
		{c[4], c[5]}, {c[5], c[7]}, {c[7], c[6]}, {c[6], c[4]},
		// verticals
		{c[0], c[4]}, {c[1], c[5]}, {c[2], c[6]}, {c[3], c[7]},
	}
}
