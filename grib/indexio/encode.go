package indexio

import (
	"io"

	"github.com/batchatco/go-thrower"
	"github.com/gribio/gribds/grib/index"
)

// WriteFlatCollection serializes coll as a MagicFlat stream. Exists
// primarily so tests can round-trip Load(WriteFlatCollection(c)) == c,
// per spec §8 property 8 ("opening the same collection bytes twice
// yields identical schemas"); a real indexer build step would call
// this once per collection build, not per open.
func WriteFlatCollection(w io.Writer, coll *index.Collection) (err error) {
	defer thrower.RecoverError(&err)

	mustWrite(w, []byte(MagicFlat))
	writeI32(w, coll.Center)
	writeI32(w, coll.Subcenter)
	writeI32(w, coll.LocalTableVersion)
	writeI32(w, coll.GenProcessID)

	writeI32(w, len(coll.Groups))
	for _, g := range coll.Groups {
		writeGroup(w, g)
	}
	return nil
}

func writeGroup(w io.Writer, g *index.Group) {
	writeString(w, g.Name)
	writeHCS(w, g.HCS)

	writeI32(w, len(g.TimeCoords))
	for _, tc := range g.TimeCoords {
		writeTimeCoord(w, tc)
	}
	writeI32(w, len(g.VertCoords))
	for _, vc := range g.VertCoords {
		writeVertCoord(w, vc)
	}
	writeI32(w, len(g.EnsCoords))
	for _, ec := range g.EnsCoords {
		writeEnsCoord(w, ec)
	}
	writeI32(w, len(g.Variables))
	for _, vi := range g.Variables {
		writeVariableIndex(w, vi)
	}
}

func writeHCS(w io.Writer, h index.HorizCoordSys) {
	writeI32(w, int(h.Kind))
	writeI32(w, h.Nx)
	writeI32(w, h.Ny)
	writeF64(w, h.StartX)
	writeF64(w, h.StartY)
	writeF64(w, h.Dx)
	writeF64(w, h.Dy)
	writeI32(w, h.ScanMode)
	writeString(w, h.Name)

	writeI32(w, len(h.GaussLats))
	for _, v := range h.GaussLats {
		writeF64(w, v)
	}
	writeI32(w, len(h.ProjParams))
	for k, v := range h.ProjParams {
		writeString(w, k)
		writeF64(w, v)
	}
}

func writeTimeCoord(w io.Writer, tc index.TimeCoord) {
	writeString(w, tc.Name)
	writeString(w, tc.Units)
	writeBool(w, tc.IsInterval)
	if tc.IsInterval {
		writeI32(w, len(tc.Bounds))
		for _, b := range tc.Bounds {
			writeI64(w, b[0])
			writeI64(w, b[1])
		}
	} else {
		writeI32(w, len(tc.Offsets))
		for _, v := range tc.Offsets {
			writeI64(w, v)
		}
	}
}

func writeVertCoord(w io.Writer, vc index.VertCoord) {
	writeI32(w, vc.LevelCode)
	writeBool(w, vc.IsLayer)
	writeString(w, vc.Name)
	writeString(w, vc.Units)
	writeBool(w, vc.PositiveUp)
	writeString(w, vc.Datum)
	writeI32(w, len(vc.Levels))
	for _, lv := range vc.Levels {
		writeF64(w, lv.Value1)
		writeF64(w, lv.Value2)
	}
}

func writeEnsCoord(w io.Writer, ec index.EnsCoord) {
	writeI32(w, len(ec.Members))
	for _, m := range ec.Members {
		writeI32(w, m)
	}
}

// WritePartitionedCollection serializes coll's top-level image as a
// MagicPartitioned stream: collection attributes, every group's union
// time coords plus partitioned variables, then the partition name
// table. It mirrors readPartitionedCollection (partition.go) field for
// field. Each partition's own flat sub-collection is a separate
// "GC1F" image (built with WriteFlatCollection) served through the
// openPartitionIndex opener supplied to Load -- this function only
// writes the outer image, the half readPartitionedCollection expects
// on this stream.
func WritePartitionedCollection(w io.Writer, coll *index.Collection) (err error) {
	defer thrower.RecoverError(&err)

	mustWrite(w, []byte(MagicPartitioned))
	writeI32(w, coll.Center)
	writeI32(w, coll.Subcenter)
	writeI32(w, coll.LocalTableVersion)
	writeI32(w, coll.GenProcessID)

	writeI32(w, len(coll.Groups))
	for _, g := range coll.Groups {
		writePartitionedGroup(w, g)
	}

	writeI32(w, len(coll.Partitions))
	for _, p := range coll.Partitions {
		writeString(w, p.Name)
	}
	return nil
}

func writePartitionedGroup(w io.Writer, g *index.Group) {
	writeString(w, g.Name)
	writeHCS(w, g.HCS)

	writeI32(w, len(g.UnionTimeCoords))
	for i := range g.UnionTimeCoords {
		writeTimeCoordUnion(w, &g.UnionTimeCoords[i])
	}
	writeI32(w, len(g.VertCoords))
	for _, vc := range g.VertCoords {
		writeVertCoord(w, vc)
	}
	writeI32(w, len(g.EnsCoords))
	for _, ec := range g.EnsCoords {
		writeEnsCoord(w, ec)
	}
	writeI32(w, len(g.VariablesPartitioned))
	for _, vp := range g.VariablesPartitioned {
		writeVariableIndexPartitioned(w, g, vp)
	}
}

func writeTimeCoordUnion(w io.Writer, u *index.TimeCoordUnion) {
	writeString(w, u.Name)
	writeString(w, u.Units)
	writeI32(w, len(u.Vals))
	for _, v := range u.Vals {
		writeI32(w, v.PartitionIndex)
		writeI32(w, v.LocalIndex)
	}
}

// writeVariableIndexPartitioned mirrors readVariableIndexPartitioned's
// field order exactly, including the unionIdx trailer that lets the
// reader re-point vp.TimeCoord into g.UnionTimeCoords.
func writeVariableIndexPartitioned(w io.Writer, g *index.Group, vp *index.VariableIndexPartitioned) {
	writeI32(w, vp.EnsIdx)
	writeI32(w, vp.VertIdx)
	writeI32(w, vp.Nens)
	writeI32(w, vp.Nverts)
	writeString(w, vp.GroupName)
	writeI32(w, vp.VarKey.TableVersion)
	writeI32(w, vp.VarKey.Parameter)
	writeI32(w, vp.VarKey.LevelType)
	writeBool(w, vp.VarKey.IsLayer)
	writeI32(w, vp.VarKey.IntvType)
	writeI32(w, vp.VarKey.EnsDerivedType)
	writeString(w, vp.VarKey.ProbabilityName)

	unionIdx := -1
	if vp.TimeCoord != nil {
		for i := range g.UnionTimeCoords {
			if &g.UnionTimeCoords[i] == vp.TimeCoord {
				unionIdx = i
				break
			}
		}
	}
	writeI32(w, unionIdx)
}

func writeVariableIndex(w io.Writer, vi *index.VariableIndex) {
	writeI32(w, vi.TableVersion)
	writeI32(w, vi.Parameter)
	writeI32(w, vi.LevelType)
	writeBool(w, vi.IsLayer)
	writeI32(w, vi.IntvType)
	writeI32(w, vi.EnsDerivedType)
	writeString(w, vi.ProbabilityName)
	writeI32(w, vi.TimeIdx)
	writeI32(w, vi.VertIdx)
	writeI32(w, vi.EnsIdx)
	writeI32(w, vi.Nens)
	writeI32(w, vi.Nverts)

	records := vi.RecordsSnapshot()
	writeI32(w, len(records))
	for _, rec := range records {
		writeI32(w, rec.FileNo)
		writeI64(w, rec.Pos)
	}
}
