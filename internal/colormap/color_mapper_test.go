package colormap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
)

func assertColor(t *testing.T, r, g, b float64, c data.Color) {
	t.Helper()
	cr, cg, cb := c.RGB()
	// float16 keeps roughly three decimal digits
	assert.InDelta(t, r, cr, 1e-3, "red")
	assert.InDelta(t, g, cg, 1e-3, "green")
	assert.InDelta(t, b, cb, 1e-3, "blue")
}

func pointAt(z float64) data.Point {
	return data.NewPoint(0, 0, z, 0, 0, 0, 0)
}

func TestParseColorMode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Rainbow, ParseColorMode(" rainbow "))
	assert.Equal(t, Warm, ParseColorMode("Warm"))
	assert.Equal(t, Cold, ParseColorMode("COLD"))
	assert.Equal(t, RGB, ParseColorMode("rgb"))
	assert.Equal(t, ColorMode(""), ParseColorMode("sepia"))
	assert.Equal(t, "", ColorMode("sepia").String())
}

func TestRGBPassthrough(t *testing.T) {
	t.Parallel()
	m := New(0, 1, 255)
	p := data.NewPoint(0, 0, 0, 255, 0, 51, 0)
	assertColor(t, 1, 0, 0.2, m.MapColor(RGB, p))

	m16 := New(0, 1, 65535)
	p = data.NewPoint(0, 0, 0, 65535, 32768, 0, 0)
	assertColor(t, 1, 0.5, 0, m16.MapColor(RGB, p))
}

func TestRainbowRamp(t *testing.T) {
	t.Parallel()
	m := New(0, 6, 65535)
	tests := []struct {
		z       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{1, 1, 0.647, 0},
		{2, 1, 1, 0},
		{3, 0, 1, 0},
		{4, 0, 0.498, 1},
		{5, 0, 0, 1},
		{6, 0.545, 0, 1},
		{0.5, 1, 0.3235, 0},
		{-3, 1, 0, 0},
		{12, 0.545, 0, 1},
	}
	for _, tt := range tests {
		assertColor(t, tt.r, tt.g, tt.b, m.MapColor(Rainbow, pointAt(tt.z)))
	}
}

func TestWarmAndColdRamps(t *testing.T) {
	t.Parallel()
	m := New(-1, 1, 65535)
	assertColor(t, 1, 0, 0, m.MapColor(Warm, pointAt(-1)))
	assertColor(t, 1, 0.647, 0, m.MapColor(Warm, pointAt(0)))
	assertColor(t, 1, 1, 0, m.MapColor(Warm, pointAt(1)))

	assertColor(t, 0, 1, 0, m.MapColor(Cold, pointAt(-1)))
	assertColor(t, 0, 0.498, 1, m.MapColor(Cold, pointAt(0)))
	assertColor(t, 0, 0, 1, m.MapColor(Cold, pointAt(1)))
	assertColor(t, 0, 0.749, 0.5, m.MapColor(Cold, pointAt(-0.5)))
}

func TestDegenerateRangeMapsToFirstStop(t *testing.T) {
	t.Parallel()
	m := New(2, 2, 65535)
	assertColor(t, 1, 0, 0, m.MapColor(Rainbow, pointAt(2)))
	assertColor(t, 0, 1, 0, m.MapColor(Cold, pointAt(5)))
}
