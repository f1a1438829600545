package index

import (
	"context"
	"sync"
)

// TimeCoordUnion is the global time axis of a time-partitioned
// collection: a concatenation-with-mapping over each partition's time
// axis. Monotone in time; PartitionIndex need not be monotone.
type TimeCoordUnion struct {
	Name  string
	Units string
	Vals  []TimeCoordUnionVal
}

// TimeCoordUnionVal is one element of a TimeCoordUnion: which partition
// backs this global time index, and that partition's own local index.
type TimeCoordUnionVal struct {
	PartitionIndex int
	LocalIndex     int
}

func (u *TimeCoordUnion) Size() int {
	return len(u.Vals)
}

// Lookup answers the question the planner needs in O(1): which partition
// and local index backs global time index t.
func (u *TimeCoordUnion) Lookup(t int) (partno, localT int) {
	v := u.Vals[t]
	return v.PartitionIndex, v.LocalIndex
}

// PartitionLoader materializes a partition's Collection (and, inside it,
// hydrates the variable's own records table) on first access. Supplied
// by grib/indexio.
type PartitionLoader func(ctx context.Context) (*Collection, error)

// Partition is one sub-collection of a time partition. Resolving it may
// involve reading its own index image from the backing stream; that work
// is serialized per-partition via mu.
type Partition struct {
	Name string

	mu       sync.Mutex
	resolved bool
	coll     *Collection
	load     PartitionLoader
}

// NewPartition wraps a not-yet-resolved partition behind a loader.
func NewPartition(name string, load PartitionLoader) *Partition {
	return &Partition{Name: name, load: load}
}

// Resolve returns this partition's Collection, loading it at most once.
func (p *Partition) Resolve(ctx context.Context) (*Collection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return p.coll, nil
	}
	coll, err := p.load(ctx)
	if err != nil {
		return nil, err
	}
	p.coll = coll
	p.resolved = true
	return p.coll, nil
}

// VariableIndexPartitioned is the partition-spanning view of a logical
// variable: the axes it shares across all partitions (ens/vert), its
// global time union, and a function resolving to the per-partition
// VariableIndex -- which itself carries that partition's own records.
type VariableIndexPartitioned struct {
	EnsIdx  int
	VertIdx int
	Nens    int
	Nverts  int

	TimeCoord *TimeCoordUnion

	// Partitions, Group, etc. needed to resolve a per-partition
	// VariableIndex by name/key once the partition's own Collection is
	// in hand. VarKey identifies which VariableIndex within the
	// partition's corresponding group this object stands for.
	Partitions []*Partition
	GroupName  string
	VarKey     VarKey
}

// VarKey identifies a VariableIndex within a group by its naming axes,
// stable across partitions (the same logical variable appears once per
// partition, keyed identically).
type VarKey struct {
	TableVersion    int
	Parameter       int
	LevelType       int
	IsLayer         bool
	IntvType        int
	EnsDerivedType  int
	ProbabilityName string
}

func KeyOf(vi *VariableIndex) VarKey {
	return VarKey{
		TableVersion:    vi.TableVersion,
		Parameter:       vi.Parameter,
		LevelType:       vi.LevelType,
		IsLayer:         vi.IsLayer,
		IntvType:        vi.IntvType,
		EnsDerivedType:  vi.EnsDerivedType,
		ProbabilityName: vi.ProbabilityName,
	}
}

// VindexFor resolves partition partno's Collection and returns the
// VariableIndex within it matching VarKey, per spec §4.1/§4.6: "possibly
// involves hydrating the partition's index ... on first access."
func (vp *VariableIndexPartitioned) VindexFor(ctx context.Context, partno int) (*VariableIndex, error) {
	coll, err := vp.Partitions[partno].Resolve(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range coll.Groups {
		if g.Name != vp.GroupName {
			continue
		}
		for _, vi := range g.Variables {
			if KeyOf(vi) == vp.VarKey {
				return vi, nil
			}
		}
	}
	return nil, ErrVariableNotInPartition
}
