// Package plan implements the slice planner (spec §4.4): given a
// VariableIndex (or VariableIndexPartitioned) and one api.Range per
// canonical axis, it produces the unordered list of DataRecord entries
// the read executor (grib/reader) will sort, coalesce and decode.
// Grounded on original_source's Grib1Iosp.readDataFromCollection and
// readDataFromPartition (the DataReader/DataReaderPartitioned inner
// classes), translated from nested nested loops filling a mutable
// records list into pure functions returning one.
package plan

import (
	"fmt"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/index"
)

// DataRecord binds one source location to its place in the dense
// output buffer. Partno is -1 for a flat (non-partitioned) plan.
type DataRecord struct {
	Partno      int
	FileNo      int
	Pos         int64
	ResultIndex int64
}

// Request is one hyper-rectangular slice request in canonical axis
// order time, ensemble?, vert?, y, x -- matching the Dimensions order
// grib/schema attaches to the target Variable. Missing axes (Ens, Vert)
// are nil when the variable has no such axis; a non-nil Range there
// with a variable that lacks the axis is an InvalidRequest (checked by
// ValidateAgainst).
type Request struct {
	Time api.Range
	Ens  *api.Range
	Vert *api.Range
	Y    api.Range
	X    api.Range
}

// ValidateAgainst checks Request's rank and bounds against vi's axes
// and the group's horizontal grid size, per spec §7's InvalidRequest
// kind and the Open Question in spec §9 requiring explicit xRange/
// yRange validation (the source left this unchecked).
func ValidateAgainst(req Request, hasEns, hasVert bool, nTime, nEns, nVert, nx, ny int) error {
	if (req.Ens != nil) != hasEns {
		return fmt.Errorf("ensemble range presence mismatch: variable hasEns=%v, request supplied=%v", hasEns, req.Ens != nil)
	}
	if (req.Vert != nil) != hasVert {
		return fmt.Errorf("vertical range presence mismatch: variable hasVert=%v, request supplied=%v", hasVert, req.Vert != nil)
	}
	if err := checkRange(req.Time, nTime, "time"); err != nil {
		return err
	}
	if req.Ens != nil {
		if err := checkRange(*req.Ens, nEns, "ensemble"); err != nil {
			return err
		}
	}
	if req.Vert != nil {
		if err := checkRange(*req.Vert, nVert, "vertical"); err != nil {
			return err
		}
	}
	if err := checkRange(req.Y, ny, "y"); err != nil {
		return err
	}
	if err := checkRange(req.X, nx, "x"); err != nil {
		return err
	}
	return nil
}

func checkRange(r api.Range, axisLen int, axis string) error {
	if r.First < 0 || r.Last >= int64(axisLen) {
		return fmt.Errorf("range [%d,%d] out of bounds for axis %q of length %d", r.First, r.Last, axis, axisLen)
	}
	return nil
}

// axisIter walks r's first..last by stride, calling visit(global, dense).
func axisIter(r api.Range, visit func(global, dense int64)) {
	dense := int64(0)
	for g := r.First; g <= r.Last; g += r.Stride {
		visit(g, dense)
		dense++
	}
}

// axisIterAbsent produces the single (0,0) iteration spec §4.4 requires
// for an axis the variable doesn't have.
func axisIterAbsent(visit func(global, dense int64)) {
	visit(0, 0)
}

// Flat builds the DataRecord list for a non-partitioned VariableIndex.
// Every record's Partno is -1.
func Flat(vi *index.VariableIndex, req Request) []DataRecord {
	var out []DataRecord

	timeIter := axisIter
	ensIter := axisIterAbsent
	vertIter := axisIterAbsent
	ensSelLen, vertSelLen := int64(1), int64(1)

	if req.Ens != nil {
		ensIter = func(visit func(int64, int64)) { axisIter(*req.Ens, visit) }
		ensSelLen = req.Ens.Len()
	}
	if req.Vert != nil {
		vertIter = func(visit func(int64, int64)) { axisIter(*req.Vert, visit) }
		vertSelLen = req.Vert.Len()
	}

	timeIter(req.Time, func(t, tPrime int64) {
		ensIter(func(e, ePrime int64) {
			vertIter(func(v, vPrime int64) {
				recIdx := index.CalcIndex(int(t), int(e), int(v), vi.NEns(), vi.NVert())
				rec := vi.RecordAt(recIdx)
				resultIndex := (tPrime*ensSelLen+ePrime)*vertSelLen + vPrime
				out = append(out, DataRecord{
					Partno:      -1,
					FileNo:      rec.FileNo,
					Pos:         rec.Pos,
					ResultIndex: resultIndex,
				})
			})
		})
	})

	return out
}
