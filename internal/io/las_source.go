package io

import (
	"github.com/edaniels/lidario"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// classification value is stored in the 5 lowest bits of the classification byte
const classificationMask = 0x1f

// PointSource backed by a LAS file
type LasSource struct {
	lf            *lidario.LasFile
	path          string
	srid          int
	eightBitColor bool
}

// Opens the LAS file at path. Colors are assumed to be 16 bit unless eightBitColor is set.
func NewLasSource(path string, srid int, eightBitColor bool) (*LasSource, error) {
	lf, err := lidario.NewLasFile(path, "r")
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open las file %s", path)
	}
	return &LasSource{
		lf:            lf,
		path:          path,
		srid:          srid,
		eightBitColor: eightBitColor,
	}, nil
}

func (s *LasSource) Header() SourceHeader {
	maxColor := 65535.0
	if s.eightBitColor {
		maxColor = 255
	}
	return SourceHeader{
		NumberPoints: s.lf.Header.NumberPoints,
		ScaleFactor: r3.Vector{
			X: s.lf.Header.XScaleFactor,
			Y: s.lf.Header.YScaleFactor,
			Z: s.lf.Header.ZScaleFactor,
		},
		Srid:          s.srid,
		MaxColorValue: maxColor,
	}
}

func (s *LasSource) Read(i int) (RawRecord, error) {
	p, err := s.lf.LasPoint(i)
	if err != nil {
		return RawRecord{}, errors.Wrapf(err, "unable to read point %d of %s", i, s.path)
	}
	data := p.PointData()
	record := RawRecord{
		X:              data.X,
		Y:              data.Y,
		Z:              data.Z,
		Classification: data.ClassBitField.Value & classificationMask,
	}
	if rgb := p.RgbData(); rgb != nil {
		record.R, record.G, record.B = rgb.Red, rgb.Green, rgb.Blue
	}
	return record, nil
}

func (s *LasSource) Close() error {
	if s.lf == nil {
		return nil
	}
	err := s.lf.Close()
	s.lf = nil
	return err
}
