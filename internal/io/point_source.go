package io

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Metadata of a point source
type SourceHeader struct {
	NumberPoints int
	// LAS coordinate scale factors, zero when unknown
	ScaleFactor r3.Vector
	// EPSG code of the coordinates, zero when unknown
	Srid int
	// Largest possible color channel value, 255 or 65535
	MaxColorValue float64
}

// A single point as read from the source, in real coordinates
type RawRecord struct {
	X, Y, Z        float64
	R, G, B        uint16
	Classification uint8
}

func (r RawRecord) Position() r3.Vector {
	return r3.Vector{X: r.X, Y: r.Y, Z: r.Z}
}

// PointSource gives indexed access to the records of a point cloud file
type PointSource interface {
	Header() SourceHeader
	Read(i int) (RawRecord, error)
	Close() error
}

// In memory PointSource
type SliceSource struct {
	header  SourceHeader
	records []RawRecord
}

func NewSliceSource(records []RawRecord, srid int, maxColorValue float64) *SliceSource {
	return &SliceSource{
		header: SourceHeader{
			NumberPoints:  len(records),
			Srid:          srid,
			MaxColorValue: maxColorValue,
		},
		records: records,
	}
}

func (s *SliceSource) Header() SourceHeader {
	return s.header
}

func (s *SliceSource) Read(i int) (RawRecord, error) {
	if i < 0 || i >= len(s.records) {
		return RawRecord{}, errors.Errorf("record %d out of range [0,%d)", i, len(s.records))
	}
	return s.records[i], nil
}

func (s *SliceSource) Close() error {
	return nil
}
