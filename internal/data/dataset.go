package data

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrEmptyDataset is returned when an operation needs at least one point
var ErrEmptyDataset = errors.New("dataset contains no points")

// Dataset carries the metadata needed to move between the normalized working space used by the
// octree and the real coordinates of the source file. It is passed explicitly to whoever needs it.
type Dataset struct {
	Store *PointStore

	// uniform scale factor, max(spanX, spanY, spanZ)
	Scale float64
	// real coordinate mapped to the origin of the working space
	Center r3.Vector

	MinReal r3.Vector
	MaxReal r3.Vector

	// LAS scale factors of the source, used to quantize coordinates back to integer records
	ScaleFactor r3.Vector

	Srid          int
	MaxColorValue float64
}

// Builds a Dataset for the given real bounds. A zero span (single point, coincident points)
// falls back to a unit scale.
func NewDataset(store *PointStore, minReal, maxReal r3.Vector) *Dataset {
	span := maxReal.Sub(minReal)
	scale := math.Max(math.Max(span.X, span.Y), span.Z)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return &Dataset{
		Store:         store,
		Scale:         scale,
		Center:        minReal.Add(maxReal).Mul(0.5),
		MinReal:       minReal,
		MaxReal:       maxReal,
		ScaleFactor:   r3.Vector{X: 0.001, Y: 0.001, Z: 0.001},
		MaxColorValue: 65535,
	}
}

// Maps a real coordinate into the working space
func (d *Dataset) Normalize(coord r3.Vector) r3.Vector {
	return coord.Sub(d.Center).Mul(1 / d.Scale)
}

// Maps a working space coordinate back to the real coordinate system
func (d *Dataset) Denormalize(v r3.Vector) r3.Vector {
	return v.Mul(d.Scale).Add(d.Center)
}

func (d *Dataset) RealCoordinate(p Point) r3.Vector {
	return d.Denormalize(p.Position)
}

// Returns the root bounds of the octree, i.e. the real bounds mapped into the working space
func (d *Dataset) NormalizedBounds() (r3.Vector, r3.Vector) {
	return d.Normalize(d.MinReal), d.Normalize(d.MaxReal)
}

// Returns the real world distance between two points of the dataset
func (d *Dataset) RealDistance(a, b Point) float64 {
	return d.RealCoordinate(a).Distance(d.RealCoordinate(b))
}

// Returns the integer LAS record values of a point, relative to MinReal and expressed in
// ScaleFactor units. Decimal arithmetic keeps values like 12.345/0.001 from landing on 12344.
func (d *Dataset) QuantizedRecord(p Point) ([3]int32, error) {
	var out [3]int32
	coord := d.RealCoordinate(p)
	reals := [3]float64{coord.X, coord.Y, coord.Z}
	mins := [3]float64{d.MinReal.X, d.MinReal.Y, d.MinReal.Z}
	factors := [3]float64{d.ScaleFactor.X, d.ScaleFactor.Y, d.ScaleFactor.Z}

	for i := 0; i < 3; i++ {
		if factors[i] == 0 {
			return out, errors.Errorf("invalid zero scale factor on axis %d", i)
		}
		q := decimal.NewFromFloat(reals[i]).
			Sub(decimal.NewFromFloat(mins[i])).
			Div(decimal.NewFromFloat(factors[i])).
			Round(0)
		if q.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || q.LessThan(decimal.NewFromInt(math.MinInt32)) {
			return out, errors.Errorf("quantized coordinate %s overflows int32 on axis %d", q.String(), i)
		}
		out[i] = int32(q.IntPart())
	}
	return out, nil
}

// Replaces the backing store, typically with the filtered copy produced by a cut.
// Normalization metadata is kept so coordinates stay comparable across cuts.
func (d *Dataset) ReplaceStore(store *PointStore) *PointStore {
	old := d.Store
	d.Store = store
	return old
}
