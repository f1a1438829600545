// Package index is the in-memory, immutable-after-load representation of
// a GRIB1 collection: groups, coordinate axes, variables and records.
// It is pure data plus one deferred load: a time partition's
// sub-collection is resolved at most once, on first use
// (Partition.Resolve in partition.go). A VariableIndex's record table is
// always filled eagerly when its collection image is decoded. Nothing
// here parses bytes; that is grib/indexio's job.
package index

import (
	"github.com/gribio/gribds/grib/api"
)

// GridKind distinguishes the two horizontal coordinate system shapes the
// schema projector (grib/schema) knows how to render.
type GridKind int

const (
	GridLatLon GridKind = iota
	GridProjected
)

// HorizCoordSys describes one group's horizontal grid.
type HorizCoordSys struct {
	Kind GridKind
	Nx   int
	Ny   int

	// StartX/StartY, Dx/Dy are in degrees for GridLatLon, kilometers for
	// GridProjected.
	StartX, StartY float64
	Dx, Dy         float64

	// GaussLats, when non-nil, overrides the arithmetic latitude
	// sequence derived from StartY/Dy (GridLatLon only).
	GaussLats []float64

	ScanMode int

	// Name identifies the projection for grid_mapping attribute
	// purposes; ProjParams carries the projection's own parameters
	// (GridProjected only).
	Name       string
	ProjParams map[string]float64
}

// NPoints is the number of grid points in one 2-D message, the size the
// codec decodes into.
func (h *HorizCoordSys) NPoints() int {
	return h.Nx * h.Ny
}

// Group is a horizontal-coordinate group: all variables sharing one grid.
//
// A flat collection's Group populates TimeCoords/Variables. A
// time-partitioned collection's top-level Group instead populates
// UnionTimeCoords/VariablesPartitioned -- the merged logical view over
// per-partition Groups, each of which is itself an ordinary flat Group
// living inside that Partition's own Collection.
type Group struct {
	HCS        HorizCoordSys
	TimeCoords []TimeCoord
	VertCoords []VertCoord
	EnsCoords  []EnsCoord
	Variables  []*VariableIndex

	UnionTimeCoords      []TimeCoordUnion
	VariablesPartitioned []*VariableIndexPartitioned

	// Name is used for the schema's Group.Name when a collection has more
	// than one horizontal-coordinate group (mirrors useGroups in
	// original_source's Grib1Iosp.addGroup).
	Name string
}

// IsPartitionedGroup reports whether this Group is the merged logical
// view of a time partition rather than an ordinary flat group.
func (g *Group) IsPartitionedGroup() bool {
	return g.VariablesPartitioned != nil
}

// Collection is the root of an opened index: attributes, groups and a
// file-handle provider. A Collection is either flat (Partitions is nil)
// or a time partition (Partitions is non-nil, and Groups holds the
// merged top-level groups with UnionTimeCoords/VariablesPartitioned --
// each partition carries its own flat groups).
type Collection struct {
	Center            int
	Subcenter         int
	LocalTableVersion int
	GenProcessID      int

	Groups []*Group

	// OpenFile resolves a dense file number to a handle. Set by
	// grib/indexio at load time (backed by grib/localfile or
	// grib/remotefile).
	OpenFile api.FileOpener

	// Partitions is non-nil only for a time-partitioned collection. Each
	// partition is itself a *Collection (with its own OpenFile), per the
	// "Partition resolves to a Collection" rule in spec §3.
	Partitions []*Partition
}

// IsPartitioned reports whether this collection is a time partition.
func (c *Collection) IsPartitioned() bool {
	return c.Partitions != nil
}
