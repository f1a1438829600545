package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/codec"
	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/plan"
)

// VarEntry is the side table spec §9 calls for in place of
// setSPobject(Object): a variableID resolves to either a flat
// VariableIndex or a partitioned one, plus the group it belongs to
// (for hcs.nx/ny/scanMode). A partitioned entry reaches its partitions
// through VariableIndexPartitioned.Partitions.
type VarEntry struct {
	Group       *index.Group
	Flat        *index.VariableIndex
	Partitioned *index.VariableIndexPartitioned
}

// NewFlatVarEntry and NewPartitionedVarEntry let grib/schema populate a
// Reader's side table without reaching into VarEntry's fields directly.
func NewFlatVarEntry(group *index.Group, vi *index.VariableIndex) VarEntry {
	return VarEntry{Group: group, Flat: vi}
}

func NewPartitionedVarEntry(group *index.Group, vp *index.VariableIndexPartitioned) VarEntry {
	return VarEntry{Group: group, Partitioned: vp}
}

// Logger is the narrow logging surface Execute needs to warn on a
// contained FileUnavailable or DecodeFailure (spec §7: "a warning is
// logged"), satisfied by *internal.Logger without this package
// depending on zerolog directly.
type Logger interface {
	Warnf(format string, v ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(format string, v ...any) {}

// Reader is the concrete api.Reader for one opened Collection.
type Reader struct {
	coll  *index.Collection
	vars  map[string]VarEntry
	codec codec.Codec
	log   Logger

	retryOpen bool
}

// New builds a Reader over an already-loaded Collection and its
// variableID side table (built by grib/schema alongside the projected
// api.Schema -- see schema.BuildSideTable). log may be nil, in which
// case contained per-record failures are silently dropped rather than
// warned about.
func New(coll *index.Collection, vars map[string]VarEntry, c codec.Codec, log Logger) *Reader {
	if log == nil {
		log = noopLogger{}
	}
	return &Reader{coll: coll, vars: vars, codec: c, log: log, retryOpen: true}
}

// Read is the primary entry point, per spec §6's Reader.read contract.
func (r *Reader) Read(ctx context.Context, variableID string, ranges []api.Range) (api.DenseFloatArray, error) {
	entry, ok := r.vars[variableID]
	if !ok {
		return api.DenseFloatArray{}, api.NewError(api.KindInvalidRequest, fmt.Errorf("unknown variable id %q", variableID))
	}
	if err := api.ValidateRanges(ranges); err != nil {
		return api.DenseFloatArray{}, api.NewError(api.KindInvalidRequest, err)
	}

	req, err := toRequest(entry, ranges)
	if err != nil {
		return api.DenseFloatArray{}, api.NewError(api.KindInvalidRequest, err)
	}

	hasEns := (entry.Flat != nil && entry.Flat.EnsIdx >= 0) || (entry.Partitioned != nil && entry.Partitioned.EnsIdx >= 0)
	hasVert := (entry.Flat != nil && entry.Flat.VertIdx >= 0) || (entry.Partitioned != nil && entry.Partitioned.VertIdx >= 0)

	nTime, nEns, nVert := axisLens(entry)
	nx, ny := entry.Group.HCS.Nx, entry.Group.HCS.Ny
	if err := plan.ValidateAgainst(req, hasEns, hasVert, nTime, nEns, nVert, nx, ny); err != nil {
		return api.DenseFloatArray{}, api.NewError(api.KindInvalidRequest, err)
	}

	var records []plan.DataRecord
	if entry.Flat != nil {
		records = plan.Flat(entry.Flat, req)
	} else {
		records, err = plan.Partitioned(ctx, entry.Partitioned, req)
		if err != nil {
			return api.DenseFloatArray{}, api.NewError(api.KindIndexCorrupt, err)
		}
	}

	outLen := req.Time.Len() * selLen(req.Ens) * selLen(req.Vert) * req.Y.Len() * req.X.Len()

	cfg := execConfig{
		openFile:  r.openFileFor(entry),
		codec:     r.codec,
		log:       r.log,
		nx:        nx,
		ny:        ny,
		scanMode:  entry.Group.HCS.ScanMode,
		ySel:      req.Y,
		xSel:      req.X,
		retryOpen: r.retryOpen,
	}

	arr, err := Execute(ctx, records, outLen, cfg)
	if err != nil {
		return api.DenseFloatArray{}, err
	}
	arr.Shape = shapeOf(req)
	return arr, nil
}

func selLen(r *api.Range) int64 {
	if r == nil {
		return 1
	}
	return r.Len()
}

func shapeOf(req plan.Request) []int64 {
	shape := []int64{req.Time.Len()}
	if req.Ens != nil {
		shape = append(shape, req.Ens.Len())
	}
	if req.Vert != nil {
		shape = append(shape, req.Vert.Len())
	}
	return append(shape, req.Y.Len(), req.X.Len())
}

func axisLens(entry VarEntry) (nTime, nEns, nVert int) {
	if entry.Flat != nil {
		return entry.Flat.NTime(), entry.Flat.NEns(), entry.Flat.NVert()
	}
	vp := entry.Partitioned
	nEns, nVert = 1, 1
	if vp.EnsIdx >= 0 {
		nEns = vp.Nens
	}
	if vp.VertIdx >= 0 {
		nVert = vp.Nverts
	}
	return vp.TimeCoord.Size(), nEns, nVert
}

func toRequest(entry VarEntry, ranges []api.Range) (plan.Request, error) {
	hasEns := (entry.Flat != nil && entry.Flat.EnsIdx >= 0) || (entry.Partitioned != nil && entry.Partitioned.EnsIdx >= 0)
	hasVert := (entry.Flat != nil && entry.Flat.VertIdx >= 0) || (entry.Partitioned != nil && entry.Partitioned.VertIdx >= 0)

	want := 3
	if hasEns {
		want++
	}
	if hasVert {
		want++
	}
	if len(ranges) != want {
		return plan.Request{}, fmt.Errorf("expected %d ranges (canonical axis order), got %d", want, len(ranges))
	}

	req := plan.Request{}
	i := 0
	req.Time = ranges[i]
	i++
	if hasEns {
		e := ranges[i]
		req.Ens = &e
		i++
	}
	if hasVert {
		v := ranges[i]
		req.Vert = &v
		i++
	}
	req.Y = ranges[i]
	i++
	req.X = ranges[i]
	return req, nil
}

// openFileFor returns the openFileFunc Execute needs, dispatching a
// partitioned record's fileno through the right partition's own
// Collection.OpenFile, per spec §4.6's "a partition's physical file
// handles are obtained via timePartition.openFile(partno, fileno)."
func (r *Reader) openFileFor(entry VarEntry) openFileFunc {
	if entry.Flat != nil {
		return func(key fileKey) (api.ReadSeekCloser, error) {
			return r.coll.OpenFile(key.fileno)
		}
	}
	return func(key fileKey) (api.ReadSeekCloser, error) {
		if key.partno < 0 || key.partno >= len(r.coll.Partitions) {
			return nil, fmt.Errorf("reader: partno %d out of range", key.partno)
		}
		part, err := r.coll.Partitions[key.partno].Resolve(context.Background())
		if err != nil {
			return nil, err
		}
		return part.OpenFile(key.fileno)
	}
}

// Close releases the Reader's resources. The index model itself is
// immutable in-memory data with no handles of its own (spec §5), so
// there is nothing more to release once no read call is in flight.
func (r *Reader) Close() error {
	return nil
}

// DetailInfo dumps coordinate sizes and record counts per variable, per
// spec §6: a diagnostic string, not parsed by any consumer. A flat
// variable's record count is nTime*nEns*nVert; a partitioned variable
// prints records=0, since no partition is resolved for the dump.
func (r *Reader) DetailInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "center=%d subcenter=%d partitioned=%v\n", r.coll.Center, r.coll.Subcenter, r.coll.IsPartitioned())
	for id, e := range r.vars {
		nTime, nEns, nVert := axisLens(e)
		nRecords := 0
		if e.Flat != nil {
			nRecords = nTime * nEns * nVert
		}
		fmt.Fprintf(&b, "  %s: nTime=%d nEns=%d nVert=%d records=%d\n", id, nTime, nEns, nVert, nRecords)
	}
	return b.String()
}
