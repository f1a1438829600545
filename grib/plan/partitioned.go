package plan

import (
	"context"

	"github.com/gribio/gribds/grib/index"
)

// Partitioned builds the DataRecord list for a VariableIndexPartitioned,
// per spec §4.4's partitioned variant: each selected global time index
// resolves through the TimeCoordUnion to (partno, localT), then through
// VindexFor to that partition's own VariableIndex, whose own records
// table supplies FileNo/Pos.
func Partitioned(ctx context.Context, vp *index.VariableIndexPartitioned, req Request) ([]DataRecord, error) {
	var out []DataRecord
	var buildErr error

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

	axisIter(req.Time, func(t, tPrime int64) {
		if buildErr != nil {
			return
		}
		partno, localT := vp.TimeCoord.Lookup(int(t))
		vpart, err := vp.VindexFor(ctx, partno)
		if err != nil {
			buildErr = err
			return
		}
		ensIter(func(e, ePrime int64) {
			vertIter(func(v, vPrime int64) {
				recIdx := index.CalcIndex(localT, int(e), int(v), vpart.NEns(), vpart.NVert())
				rec := vpart.RecordAt(recIdx)
				resultIndex := (tPrime*ensSelLen+ePrime)*vertSelLen + vPrime
				out = append(out, DataRecord{
					Partno:      partno,
					FileNo:      rec.FileNo,
					Pos:         rec.Pos,
					ResultIndex: resultIndex,
				})
			})
		})
	})

	if buildErr != nil {
		return nil, buildErr
	}
	return out, nil
}
