package colormap

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
)

var (
	red    = colorful.Color{R: 1, G: 0, B: 0}
	orange = colorful.Color{R: 1, G: 0.647, B: 0}
	yellow = colorful.Color{R: 1, G: 1, B: 0}
	green  = colorful.Color{R: 0, G: 1, B: 0}
	cyan   = colorful.Color{R: 0, G: 0.498, B: 1}
	blue   = colorful.Color{R: 0, G: 0, B: 1}
	purple = colorful.Color{R: 0.545, G: 0, B: 1}
)

var ramps = map[ColorMode][]colorful.Color{
	Rainbow: {red, orange, yellow, green, cyan, blue, purple},
	Warm:    {red, orange, yellow},
	Cold:    {green, cyan, blue},
}

// ColorMapper turns a point into its display color for a given ColorMode. Elevation ramps are
// driven by the point height relative to the [MinZ, MaxZ] range of the dataset.
type ColorMapper struct {
	MinZ       float64
	MaxZ       float64
	MaxChannel float64
}

// Builds a mapper for the given height range and color depth (255 or 65535)
func New(minZ, maxZ, maxChannel float64) *ColorMapper {
	if maxChannel <= 0 {
		maxChannel = 65535
	}
	return &ColorMapper{MinZ: minZ, MaxZ: maxZ, MaxChannel: maxChannel}
}

func (m *ColorMapper) MapColor(mode ColorMode, p data.Point) data.Color {
	stops, ok := ramps[mode]
	if !ok {
		return m.rawColor(p)
	}
	c := sample(stops, m.height(p.Position.Z))
	return data.NewColor(c.R, c.G, c.B)
}

func (m *ColorMapper) rawColor(p data.Point) data.Color {
	return data.NewColor(
		clamp01(float64(p.RawColor[0])/m.MaxChannel),
		clamp01(float64(p.RawColor[1])/m.MaxChannel),
		clamp01(float64(p.RawColor[2])/m.MaxChannel),
	)
}

// Returns the relative height of z in [0,1]. An empty range maps everything to 0.
func (m *ColorMapper) height(z float64) float64 {
	span := m.MaxZ - m.MinZ
	if span <= 0 {
		return 0
	}
	return clamp01((z - m.MinZ) / span)
}

// Linear interpolation across equally sized segments between consecutive stops. A value on a
// segment boundary belongs to the lower segment.
func sample(stops []colorful.Color, t float64) colorful.Color {
	segments := len(stops) - 1
	for i := 0; i < segments; i++ {
		upper := float64(i+1) / float64(segments)
		if t <= upper || i == segments-1 {
			local := (t - float64(i)/float64(segments)) * float64(segments)
			return stops[i].BlendRgb(stops[i+1], clamp01(local))
		}
	}
	return stops[0]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
