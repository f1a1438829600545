package schema

import (
	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/reader"
)

// BuildSideTable builds the variableID -> reader.VarEntry map a
// reader.Reader needs, over every group of a Collection (flat groups
// contribute flat entries, the merged partitioned group contributes
// partitioned entries). The map uses the same variableID function the
// projector used to build each Variable.ID, so Reader.Read's lookup by
// ID always hits.
func BuildSideTable(coll *index.Collection) map[string]reader.VarEntry {
	out := map[string]reader.VarEntry{}
	for _, g := range coll.Groups {
		if g.IsPartitionedGroup() {
			for i, vp := range g.VariablesPartitioned {
				out[variableID(g.Name, i, vp.VarKey)] = reader.NewPartitionedVarEntry(g, vp)
			}
			continue
		}
		for i, vi := range g.Variables {
			out[variableID(g.Name, i, index.KeyOf(vi))] = reader.NewFlatVarEntry(g, vi)
		}
	}
	return out
}
