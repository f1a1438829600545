package indexio

import (
	"io"

	"github.com/batchatco/go-thrower"
	"github.com/gribio/gribds/grib/index"
)

// readFlatCollection decodes everything after the magic prefix for a
// MagicFlat stream: Collection attributes, then every Group eagerly,
// including each VariableIndex's own records table -- a flat image is
// always read in one pass, so there is no deferred-hydration point
// below partition granularity (see index.Partition.Resolve for the
// one place this collection model does defer a load).
func readFlatCollection(stream io.ReadSeeker) (coll *index.Collection, err error) {
	defer thrower.RecoverError(&err)

	coll = &index.Collection{
		Center:            readI32(stream),
		Subcenter:         readI32(stream),
		LocalTableVersion: readI32(stream),
		GenProcessID:      readI32(stream),
	}
	nGroups := readI32(stream)
	for i := 0; i < nGroups; i++ {
		coll.Groups = append(coll.Groups, readGroup(stream))
	}
	return coll, nil
}

func readGroup(r io.Reader) *index.Group {
	g := &index.Group{Name: readString(r), HCS: readHCS(r)}

	nTime := readI32(r)
	for i := 0; i < nTime; i++ {
		g.TimeCoords = append(g.TimeCoords, readTimeCoord(r))
	}
	nVert := readI32(r)
	for i := 0; i < nVert; i++ {
		g.VertCoords = append(g.VertCoords, readVertCoord(r))
	}
	nEns := readI32(r)
	for i := 0; i < nEns; i++ {
		g.EnsCoords = append(g.EnsCoords, readEnsCoord(r))
	}
	nVars := readI32(r)
	for i := 0; i < nVars; i++ {
		g.Variables = append(g.Variables, readVariableIndex(r, g))
	}
	return g
}

func readHCS(r io.Reader) index.HorizCoordSys {
	h := index.HorizCoordSys{
		Kind:     index.GridKind(readI32(r)),
		Nx:       readI32(r),
		Ny:       readI32(r),
		StartX:   readF64(r),
		StartY:   readF64(r),
		Dx:       readF64(r),
		Dy:       readF64(r),
		ScanMode: readI32(r),
		Name:     readString(r),
	}
	nGauss := readI32(r)
	if nGauss > 0 {
		h.GaussLats = make([]float64, nGauss)
		for i := range h.GaussLats {
			h.GaussLats[i] = readF64(r)
		}
	}
	nProj := readI32(r)
	if nProj > 0 {
		h.ProjParams = make(map[string]float64, nProj)
		for i := 0; i < nProj; i++ {
			key := readString(r)
			h.ProjParams[key] = readF64(r)
		}
	}
	return h
}

func readTimeCoord(r io.Reader) index.TimeCoord {
	tc := index.TimeCoord{Name: readString(r), Units: readString(r), IsInterval: readBool(r)}
	n := readI32(r)
	if tc.IsInterval {
		tc.Bounds = make([][2]int64, n)
		for i := range tc.Bounds {
			tc.Bounds[i] = [2]int64{readI64(r), readI64(r)}
		}
	} else {
		tc.Offsets = make([]int64, n)
		for i := range tc.Offsets {
			tc.Offsets[i] = readI64(r)
		}
	}
	return tc
}

func readVertCoord(r io.Reader) index.VertCoord {
	vc := index.VertCoord{
		LevelCode:  readI32(r),
		IsLayer:    readBool(r),
		Name:       readString(r),
		Units:      readString(r),
		PositiveUp: readBool(r),
		Datum:      readString(r),
	}
	n := readI32(r)
	vc.Levels = make([]index.Level, n)
	for i := range vc.Levels {
		vc.Levels[i] = index.Level{Value1: readF64(r), Value2: readF64(r)}
	}
	return vc
}

func readEnsCoord(r io.Reader) index.EnsCoord {
	n := readI32(r)
	ec := index.EnsCoord{Members: make([]int, n)}
	for i := range ec.Members {
		ec.Members[i] = readI32(r)
	}
	return ec
}

func readVariableIndex(r io.Reader, g *index.Group) *index.VariableIndex {
	vi := &index.VariableIndex{
		TableVersion:    readI32(r),
		Parameter:       readI32(r),
		LevelType:       readI32(r),
		IsLayer:         readBool(r),
		IntvType:        readI32(r),
		EnsDerivedType:  readI32(r),
		ProbabilityName: readString(r),
		TimeIdx:         readI32(r),
		VertIdx:         readI32(r),
		EnsIdx:          readI32(r),
		Nens:            readI32(r),
		Nverts:          readI32(r),
		Group:           g,
	}
	nRecords := readI32(r)
	records, err := readRecords(r, nRecords)
	thrower.ThrowIfError(err)
	vi.SetRecords(records)
	return vi
}

// readRecords decodes count Record entries inline.
func readRecords(r io.Reader, count int) (out []index.Record, err error) {
	defer thrower.RecoverError(&err)
	out = make([]index.Record, count)
	for i := range out {
		out[i] = index.Record{FileNo: readI32(r), Pos: readI64(r)}
	}
	return out, nil
}
