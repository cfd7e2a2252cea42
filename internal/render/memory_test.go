package render

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecopia-map/pointcloud_viewer/internal/data"
)

func TestMemoryBatchLifecycle(t *testing.T) {
	t.Parallel()
	c := NewMemoryCompiler()
	vertices := []Vertex{
		NewVertex(data.NewPoint(1, 2, 3, 0, 0, 0, 0)),
		NewVertex(data.NewPoint(-1, 0, 0.5, 0, 0, 0, 0)),
	}
	b := c.Compile(vertices)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, int64(1), c.Live())

	// the batch owns a copy
	vertices[0].Position[0] = 42
	assert.Equal(t, float32(1), b.(*MemoryBatch).Vertices()[0].Position[0])

	b.Release()
	b.Release()
	assert.True(t, b.(*MemoryBatch).Released())
	assert.Equal(t, int64(0), c.Live())
	assert.Equal(t, int64(1), c.Compiled())
}

func TestMemorySurfaceRecordsFrame(t *testing.T) {
	t.Parallel()
	c := NewMemoryCompiler()
	s := NewMemorySurface()
	s.DrawBatch(c.Compile(make([]Vertex, 5)), 2)
	s.DrawLines(make([][2]r3.Vector, 12))

	assert.Len(t, s.Batches, 1)
	assert.Equal(t, 5, s.Points)
	assert.Equal(t, 12, s.Segments)
	assert.Equal(t, 2.0, s.PointSize)

	s.Reset()
	assert.Empty(t, s.Batches)
	assert.Zero(t, s.Points)
}
