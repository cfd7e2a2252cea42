package io

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/edaniels/lidario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// Writes records as a point format 2 LAS file. classBytes holds the raw classification byte of
// each record, flag bits included.
func writeLasFile(t *testing.T, records []RawRecord, classBytes []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloud.las")

	lf, err := lidario.NewLasFile(path, "w")
	require.NoError(t, err)
	require.NoError(t, lf.AddHeader(lidario.LasHeader{PointFormatID: 2}))
	for i, r := range records {
		p := &lidario.PointRecord2{
			PointRecord0: &lidario.PointRecord0{
				X:             r.X,
				Y:             r.Y,
				Z:             r.Z,
				ClassBitField: lidario.ClassificationBitField{Value: classBytes[i]},
			},
			RGB: &lidario.RgbData{Red: r.R, Green: r.G, Blue: r.B},
		}
		err = multierr.Append(err, lf.AddLasPoint(p))
	}
	require.NoError(t, multierr.Combine(err, lf.Close()))
	return path
}

func lasRecords() ([]RawRecord, []byte) {
	records := []RawRecord{
		{X: 500000, Y: 4000000, Z: 100, R: 65535, G: 0, B: 0},
		{X: 500010.5, Y: 4000000.25, Z: 101.5, R: 0, G: 65535, B: 0},
		{X: 500003.25, Y: 4000008, Z: 104, R: 255, G: 128, B: 1},
		{X: 500007, Y: 4000004.5, Z: 102.25, R: 1000, G: 2000, B: 3000},
	}
	// synthetic, key-point and withheld flags live in the upper bits
	classBytes := []byte{2, 0x20 | 6, 0xe0 | 9, 0x80 | 17}
	return records, classBytes
}

func TestLasSourceReadsRecords(t *testing.T) {
	t.Parallel()
	records, classBytes := lasRecords()
	path := writeLasFile(t, records, classBytes)

	source, err := NewLasSource(path, 32633, false)
	require.NoError(t, err)
	defer source.Close()

	header := source.Header()
	assert.Equal(t, len(records), header.NumberPoints)
	assert.Equal(t, 32633, header.Srid)
	assert.Equal(t, 65535.0, header.MaxColorValue)
	assert.InDelta(t, 0.0001, header.ScaleFactor.X, 1e-12)
	assert.InDelta(t, 0.0001, header.ScaleFactor.Z, 1e-12)

	expectedClasses := []uint8{2, 6, 9, 17}
	for i, expected := range records {
		r, err := source.Read(i)
		require.NoError(t, err)
		assert.InDelta(t, expected.X, r.X, 1e-3)
		assert.InDelta(t, expected.Y, r.Y, 1e-3)
		assert.InDelta(t, expected.Z, r.Z, 1e-3)
		assert.Equal(t, expectedClasses[i], r.Classification)
		assert.Equal(t, [3]uint16{expected.R, expected.G, expected.B}, [3]uint16{r.R, r.G, r.B})
	}

	_, err = source.Read(len(records))
	assert.Error(t, err)
	assert.NoError(t, source.Close())
	assert.NoError(t, source.Close())
}

func TestLoadLasFile(t *testing.T) {
	t.Parallel()
	records, classBytes := lasRecords()
	path := writeLasFile(t, records, classBytes)

	dataset, err := LoadLasFile(context.Background(), path, false, testOptions(2, 3, 0))
	require.NoError(t, err)
	require.Equal(t, len(records), dataset.Store.Len())
	assert.Equal(t, 65535.0, dataset.MaxColorValue)
	assert.InDelta(t, 0.0001, dataset.ScaleFactor.Y, 1e-12)

	for i, p := range dataset.Store.Points() {
		coord := dataset.RealCoordinate(p)
		assert.InDelta(t, records[i].X, coord.X, 1e-3)
		assert.InDelta(t, records[i].Y, coord.Y, 1e-3)
		assert.InDelta(t, records[i].Z, coord.Z, 1e-3)
		assert.Equal(t, classBytes[i]&0x1f, p.Classification)
		assert.Equal(t, [3]uint16{records[i].R, records[i].G, records[i].B}, p.RawColor)
	}

	eightBit, err := LoadLasFile(context.Background(), path, true, testOptions(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 255.0, eightBit.MaxColorValue)
}

func TestLoadLasFileMissing(t *testing.T) {
	t.Parallel()
	_, err := LoadLasFile(context.Background(), filepath.Join(t.TempDir(), "missing.las"), false, testOptions(1, 0, 0))
	assert.Error(t, err)
}
