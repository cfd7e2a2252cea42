package io

import (
	"context"
	"sync"
)

const DefaultChunkSize = 8192

type StandardProducer struct {
	ctx       context.Context
	source    PointSource
	chunkSize int
}

func NewStandardProducer(ctx context.Context, source PointSource, chunkSize int) *StandardProducer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &StandardProducer{
		ctx:       ctx,
		source:    source,
		chunkSize: chunkSize,
	}
}

// Reads the source sequentially and submits chunks of records to the provided work channel.
// Closes the channel when all work is submitted, when a read fails or when the context is done.
func (p *StandardProducer) Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(work)

	total := p.source.Header().NumberPoints
	for offset := 0; offset < total; offset += p.chunkSize {
		if err := p.ctx.Err(); err != nil {
			errchan <- err
			return
		}
		end := offset + p.chunkSize
		if end > total {
			end = total
		}

		records := make([]RawRecord, 0, end-offset)
		for i := offset; i < end; i++ {
			record, err := p.source.Read(i)
			if err != nil {
				errchan <- err
				return
			}
			records = append(records, record)
		}

		select {
		case work <- &WorkUnit{Offset: offset, Records: records}:
		case <-p.ctx.Done():
			errchan <- p.ctx.Err()
			return
		}
	}
}
