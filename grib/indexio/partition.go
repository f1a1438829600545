package indexio

import (
	"context"
	"fmt"
	"io"

	"github.com/batchatco/go-thrower"
	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/index"
)

// readPartitionedCollection decodes a MagicPartitioned stream: the
// union time coord and vert/ens coords live in the top-level group
// eagerly (they're small and shared across partitions); each
// partition's own flat sub-collection is a separate "GC1F" stream, opened
// and decoded lazily by partition number through openPartitionIndex,
// matching spec §4.6's "possibly involves hydrating the partition's
// index... on first access."
//
// openPartitionIndex resolves a partition number to the stream carrying
// that partition's own index bytes (distinct from the per-partition
// GRIB1 file handles each resolved sub-Collection will use for its own
// records).
func readPartitionedCollection(stream io.ReadSeeker, openPartitionIndex api.FileOpener) (coll *index.Collection, err error) {
	defer thrower.RecoverError(&err)

	coll = &index.Collection{
		Center:            readI32(stream),
		Subcenter:         readI32(stream),
		LocalTableVersion: readI32(stream),
		GenProcessID:      readI32(stream),
	}

	nGroups := readI32(stream)
	for i := 0; i < nGroups; i++ {
		coll.Groups = append(coll.Groups, readPartitionedGroup(stream))
	}

	nParts := readI32(stream)
	names := make([]string, nParts)
	for i := range names {
		names[i] = readString(stream)
	}

	coll.Partitions = make([]*index.Partition, nParts)
	for i, name := range names {
		partno := i
		coll.Partitions[partno] = index.NewPartition(name, func(ctx context.Context) (*index.Collection, error) {
			return loadPartition(partno, openPartitionIndex)
		})
	}

	for _, g := range coll.Groups {
		for _, vp := range g.VariablesPartitioned {
			vp.Partitions = coll.Partitions
		}
	}

	return coll, nil
}

func readPartitionedGroup(r io.Reader) *index.Group {
	g := &index.Group{Name: readString(r), HCS: readHCS(r)}

	nUnion := readI32(r)
	for i := 0; i < nUnion; i++ {
		g.UnionTimeCoords = append(g.UnionTimeCoords, readTimeCoordUnion(r))
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
		g.VariablesPartitioned = append(g.VariablesPartitioned, readVariableIndexPartitioned(r, g))
	}
	return g
}

func readTimeCoordUnion(r io.Reader) index.TimeCoordUnion {
	u := index.TimeCoordUnion{Name: readString(r), Units: readString(r)}
	n := readI32(r)
	u.Vals = make([]index.TimeCoordUnionVal, n)
	for i := range u.Vals {
		u.Vals[i] = index.TimeCoordUnionVal{PartitionIndex: readI32(r), LocalIndex: readI32(r)}
	}
	return u
}

func readVariableIndexPartitioned(r io.Reader, g *index.Group) *index.VariableIndexPartitioned {
	vp := &index.VariableIndexPartitioned{
		EnsIdx:    readI32(r),
		VertIdx:   readI32(r),
		Nens:      readI32(r),
		Nverts:    readI32(r),
		GroupName: readString(r),
		VarKey: index.VarKey{
			TableVersion:    readI32(r),
			Parameter:       readI32(r),
			LevelType:       readI32(r),
			IsLayer:         readBool(r),
			IntvType:        readI32(r),
			EnsDerivedType:  readI32(r),
			ProbabilityName: readString(r),
		},
	}
	unionIdx := readI32(r)
	if unionIdx >= 0 && unionIdx < len(g.UnionTimeCoords) {
		vp.TimeCoord = &g.UnionTimeCoords[unionIdx]
	}
	return vp
}

// loadPartition opens partition partno's own index stream via
// openPartitionIndex and decodes it as an ordinary flat collection --
// a Partition is, per spec §3, "itself a Collection with its own
// file-handle provider."
func loadPartition(partno int, openPartitionIndex api.FileOpener) (*index.Collection, error) {
	stream, err := openPartitionIndex(partno)
	if err != nil {
		return nil, fmt.Errorf("indexio: open partition %d index: %w", partno, err)
	}
	defer stream.Close()

	var magic [4]byte
	if _, err := io.ReadFull(stream, magic[:]); err != nil {
		return nil, withKind(api.KindIndexCorrupt, err)
	}
	if string(magic[:]) != MagicFlat {
		return nil, withKind(api.KindIndexCorrupt, fmt.Errorf("indexio: partition %d is not a flat sub-index", partno))
	}
	coll, err := readFlatCollection(stream)
	if err != nil {
		return nil, withKind(api.KindIndexCorrupt, err)
	}
	// The resolved sub-collection needs its own file-handle provider too
	// (spec §3: "a Partition is itself a Collection with its own
	// file-handle provider") -- reuse the same opener the caller wired
	// for locating partition index streams, since this module exposes
	// only one api.FileOpener per dataset open.
	coll.OpenFile = openPartitionIndex
	return coll, nil
}
