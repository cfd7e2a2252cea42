package render

import (
	"sync/atomic"

	"github.com/golang/geo/r3"
)

// MemoryCompiler keeps compiled vertices in memory. It is used by the command line tools,
// which have no graphics context, and by tests to check batch lifecycles.
type MemoryCompiler struct {
	compiled int64
	live     int64
}

func NewMemoryCompiler() *MemoryCompiler {
	return &MemoryCompiler{}
}

func (c *MemoryCompiler) Compile(vertices []Vertex) Batch {
	atomic.AddInt64(&c.compiled, 1)
	atomic.AddInt64(&c.live, 1)
	copied := make([]Vertex, len(vertices))
	copy(copied, vertices)
	return &MemoryBatch{vertices: copied, owner: c}
}

// Total number of batches compiled so far
func (c *MemoryCompiler) Compiled() int64 {
	return atomic.LoadInt64(&c.compiled)
}

// Number of batches compiled and not yet released
func (c *MemoryCompiler) Live() int64 {
	return atomic.LoadInt64(&c.live)
}

type MemoryBatch struct {
	vertices []Vertex
	owner    *MemoryCompiler
	released int32
}

func (b *MemoryBatch) Len() int {
	return len(b.vertices)
}

func (b *MemoryBatch) Vertices() []Vertex {
	return b.vertices
}

func (b *MemoryBatch) Released() bool {
	return atomic.LoadInt32(&b.released) == 1
}

func (b *MemoryBatch) Release() {
	if atomic.CompareAndSwapInt32(&b.released, 0, 1) {
		atomic.AddInt64(&b.owner.live, -1)
		b.vertices = nil
	}
}

// MemorySurface records what a frame would have drawn
type MemorySurface struct {
	Batches   []Batch
	Points    int
	Segments  int
	PointSize float64
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) DrawBatch(batch Batch, pointSize float64) {
	s.Batches = append(s.Batches, batch)
	s.Points += batch.Len()
	s.PointSize = pointSize
}

func (s *MemorySurface) DrawLines(segments [][2]r3.Vector) {
	s.Segments += len(segments)
}

// Clears the recorded frame
func (s *MemorySurface) Reset() {
	s.Batches = s.Batches[:0]
	s.Points = 0
	s.Segments = 0
}
