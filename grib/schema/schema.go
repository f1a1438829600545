// Package schema projects an *index.Group into the api.Group the
// enclosing dataset facade (out of scope per spec §1) will render:
// coordinate variables, their _bounds children, and one data variable
// per logical VariableIndex with the canonical axis order. Grounded on
// original_source's addGroup/makeVariable (vertical/time/ensemble
// coordinate construction, grid_mapping attribute) and on the teacher's
// netcdf4.go for how a Group/Variable pair is assembled from typed
// pieces rather than a generic attribute bag.
package schema

import (
	"fmt"
	"math"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/naming"
	"github.com/gribio/gribds/grib/paramtable"
)

// Project builds the api.Group for one index.Group, including every
// coordinate variable, bounds child, and data variable it carries.
func Project(params paramtable.Service, center, subcenter int, g *index.Group) api.Group {
	out := api.Group{Name: g.Name}

	out.CoordVars = append(out.CoordVars, horizontalCoordVars(&g.HCS)...)

	if g.IsPartitionedGroup() {
		for i := range g.UnionTimeCoords {
			out.CoordVars = append(out.CoordVars, unionTimeCoordVar(&g.UnionTimeCoords[i]))
		}
	} else {
		for i := range g.TimeCoords {
			out.CoordVars = append(out.CoordVars, timeCoordVars(&g.TimeCoords[i])...)
		}
	}
	for i := range g.VertCoords {
		out.CoordVars = append(out.CoordVars, vertCoordVars(&g.VertCoords[i])...)
	}
	for i := range g.EnsCoords {
		out.CoordVars = append(out.CoordVars, ensCoordVar(&g.EnsCoords[i]))
	}

	if g.IsPartitionedGroup() {
		names := make([]string, len(g.VariablesPartitioned))
		for i, vp := range g.VariablesPartitioned {
			names[i] = naming.ShortName(params, center, subcenter, vp.VarKey)
		}
		naming.Disambiguate(names)
		for i, vp := range g.VariablesPartitioned {
			out.DataVars = append(out.DataVars, partitionedDataVariable(params, center, subcenter, names[i], vp, g, i))
		}
		return out
	}

	names := make([]string, len(g.Variables))
	for i, vi := range g.Variables {
		names[i] = naming.ShortName(params, center, subcenter, index.KeyOf(vi))
	}
	naming.Disambiguate(names)

	for i, vi := range g.Variables {
		out.DataVars = append(out.DataVars, dataVariable(params, center, subcenter, names[i], vi, g, i))
	}

	return out
}

func timeCoordVars(tc *index.TimeCoord) []api.CoordVar {
	attrs := api.NewAttributeMap()
	attrs.Set("units", tc.Units)
	cv := api.CoordVar{Name: tc.Name, DimName: tc.Name, Attributes: attrs}
	if tc.IsInterval {
		mid := make([]int64, len(tc.Bounds))
		bounds := make([][2]int64, len(tc.Bounds))
		for i, b := range tc.Bounds {
			mid[i] = (b[0] + b[1]) / 2
			bounds[i] = b
		}
		cv.Values = mid
		boundsAttrs := api.NewAttributeMap()
		boundsAttrs.Set("units", tc.Units)
		bv := api.CoordVar{
			Name:       tc.Name + "_bounds",
			DimName:    tc.Name,
			Values:     bounds,
			Attributes: boundsAttrs,
		}
		attrs.Set("bounds", bv.Name)
		return []api.CoordVar{cv, bv}
	}
	cv.Values = tc.Offsets
	return []api.CoordVar{cv}
}

func vertCoordVars(vc *index.VertCoord) []api.CoordVar {
	attrs := api.NewAttributeMap()
	attrs.Set("units", vc.Units)
	attrs.Set("positive", positiveDirection(vc.PositiveUp))
	if vc.Datum != "" {
		attrs.Set("datum", vc.Datum)
	}
	cv := api.CoordVar{Name: vc.Name, DimName: vc.Name, Attributes: attrs}

	if vc.IsLayer {
		mid := make([]float64, len(vc.Levels))
		bounds := make([][2]float64, len(vc.Levels))
		for i, lv := range vc.Levels {
			mid[i] = (lv.Value1 + lv.Value2) / 2
			bounds[i] = [2]float64{lv.Value1, lv.Value2}
		}
		cv.Values = mid
		boundsAttrs := api.NewAttributeMap()
		boundsAttrs.Set("units", vc.Units)
		bv := api.CoordVar{
			Name:       vc.Name + "_bounds",
			DimName:    vc.Name,
			Values:     bounds,
			Attributes: boundsAttrs,
		}
		attrs.Set("bounds", bv.Name)
		return []api.CoordVar{cv, bv}
	}

	vals := make([]float64, len(vc.Levels))
	for i, lv := range vc.Levels {
		vals[i] = lv.Value1
	}
	cv.Values = vals
	return []api.CoordVar{cv}
}

func positiveDirection(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

// unionTimeCoordVar projects a TimeCoordUnion as an ordinal coordinate
// (global index 0..N-1): the real forecast-hour values live inside
// each partition's own TimeCoord and are not read here, since the
// projector never performs I/O (spec §4.1 reserves hydration for the
// read path, not schema projection). Its partition_index attribute lets
// a caller correlate axis positions with physical partitions without
// resolving any of them.
func unionTimeCoordVar(u *index.TimeCoordUnion) api.CoordVar {
	vals := make([]int64, u.Size())
	partIdx := make([]int64, u.Size())
	for i := range vals {
		vals[i] = int64(i)
		partIdx[i] = int64(u.Vals[i].PartitionIndex)
	}
	attrs := api.NewAttributeMap()
	attrs.Set("units", u.Units)
	attrs.Set("partition_index", partIdx)
	name := u.Name
	if name == "" {
		name = "time"
	}
	return api.CoordVar{Name: name, DimName: name, Values: vals, Attributes: attrs}
}

func ensCoordVar(ec *index.EnsCoord) api.CoordVar {
	return api.CoordVar{Name: "ensemble", DimName: "ensemble", Values: ec.Members, Attributes: api.NewAttributeMap()}
}

// horizontalCoordVars builds lat/lon (GridLatLon) or x/y plus a scalar
// projection variable (GridProjected), per spec §4.3.
func horizontalCoordVars(hcs *index.HorizCoordSys) []api.CoordVar {
	if hcs.Kind == index.GridProjected {
		xAttrs := api.NewAttributeMap()
		xAttrs.Set("units", "km")
		yAttrs := api.NewAttributeMap()
		yAttrs.Set("units", "km")
		projAttrs := api.NewAttributeMap()
		for k, v := range hcs.ProjParams {
			projAttrs.Set(k, v)
		}
		return []api.CoordVar{
			{Name: "x", DimName: "x", Values: arithmeticSeq(hcs.StartX, hcs.Dx, hcs.Nx), Attributes: xAttrs},
			{Name: "y", DimName: "y", Values: arithmeticSeq(hcs.StartY, hcs.Dy, hcs.Ny), Attributes: yAttrs},
			{Name: hcs.Name, DimName: "", Values: nil, Attributes: projAttrs},
		}
	}

	lonAttrs := api.NewAttributeMap()
	lonAttrs.Set("units", "degrees_east")
	latAttrs := api.NewAttributeMap()
	latAttrs.Set("units", "degrees_north")

	var lats []float64
	if hcs.GaussLats != nil {
		lats = hcs.GaussLats
	} else {
		lats = arithmeticSeq(hcs.StartY, hcs.Dy, hcs.Ny)
	}

	return []api.CoordVar{
		{Name: "lat", DimName: "y", Values: lats, Attributes: latAttrs},
		{Name: "lon", DimName: "x", Values: arithmeticSeq(hcs.StartX, hcs.Dx, hcs.Nx), Attributes: lonAttrs},
	}
}

func arithmeticSeq(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = start + float64(i)*step
	}
	return out
}

// dataVariable builds the api.Variable for one logical VariableIndex:
// canonical dims time,ensemble?,vert?,y,x with optional axes omitted,
// plus the attribute set spec §4.3 requires.
func dataVariable(params paramtable.Service, center, subcenter int, name string, vi *index.VariableIndex, g *index.Group, ordinal int) api.Variable {
	var dims []string
	var shape []int64

	timeName := "time"
	if vi.TimeIdx >= 0 {
		timeName = g.TimeCoords[vi.TimeIdx].Name
	}
	dims = append(dims, timeName)
	shape = append(shape, int64(vi.NTime()))

	if vi.EnsIdx >= 0 {
		dims = append(dims, "ensemble")
		shape = append(shape, int64(vi.NEns()))
	}
	if vi.VertIdx >= 0 {
		dims = append(dims, g.VertCoords[vi.VertIdx].Name)
		shape = append(shape, int64(vi.NVert()))
	}
	dims = append(dims, "y", "x")
	shape = append(shape, int64(g.HCS.Ny), int64(g.HCS.Nx))

	key := index.KeyOf(vi)
	attrs := api.NewAttributeMap()
	attrs.Set("long_name", naming.LongName(params, center, subcenter, key))
	attrs.Set("units", naming.Units(params, center, subcenter, key))
	attrs.Set("_FillValue", float32(math.NaN()))
	attrs.Set("missing_value", float32(math.NaN()))
	if g.HCS.Name != "" {
		attrs.Set("grid_mapping", g.HCS.Name)
	}
	attrs.Set("Grib1_parameter", vi.Parameter)
	attrs.Set("Grib1_level_type", vi.LevelType)
	if vi.IntvType >= 0 {
		attrs.Set("Grib1_interval_type", vi.IntvType)
	}
	if vi.ProbabilityName != "" {
		attrs.Set("Grib1_probability_name", vi.ProbabilityName)
	} else if vi.EnsDerivedType >= 0 {
		attrs.Set("Grib1_ensemble_derived_type", vi.EnsDerivedType)
	}

	return api.Variable{
		ID:         variableID(g.Name, ordinal, key),
		Name:       name,
		Dimensions: dims,
		Shape:      shape,
		Attributes: attrs,
	}
}

// partitionedDataVariable is dataVariable's analog for a
// VariableIndexPartitioned: the time axis comes from the group's
// UnionTimeCoords rather than a flat TimeCoord, everything else reads
// off vp.VarKey exactly as the flat path reads off index.KeyOf(vi).
func partitionedDataVariable(params paramtable.Service, center, subcenter int, name string, vp *index.VariableIndexPartitioned, g *index.Group, ordinal int) api.Variable {
	var dims []string
	var shape []int64

	timeName := "time"
	if u := vp.TimeCoord; u != nil && u.Name != "" {
		timeName = u.Name
	}
	dims = append(dims, timeName)
	shape = append(shape, int64(vp.TimeCoord.Size()))

	if vp.EnsIdx >= 0 {
		dims = append(dims, "ensemble")
		shape = append(shape, int64(vp.Nens))
	}
	if vp.VertIdx >= 0 {
		dims = append(dims, g.VertCoords[vp.VertIdx].Name)
		shape = append(shape, int64(vp.Nverts))
	}
	dims = append(dims, "y", "x")
	shape = append(shape, int64(g.HCS.Ny), int64(g.HCS.Nx))

	key := vp.VarKey
	attrs := api.NewAttributeMap()
	attrs.Set("long_name", naming.LongName(params, center, subcenter, key))
	attrs.Set("units", naming.Units(params, center, subcenter, key))
	attrs.Set("_FillValue", float32(math.NaN()))
	attrs.Set("missing_value", float32(math.NaN()))
	if g.HCS.Name != "" {
		attrs.Set("grid_mapping", g.HCS.Name)
	}
	attrs.Set("Grib1_parameter", key.Parameter)
	attrs.Set("Grib1_level_type", key.LevelType)
	if key.IntvType >= 0 {
		attrs.Set("Grib1_interval_type", key.IntvType)
	}
	if key.ProbabilityName != "" {
		attrs.Set("Grib1_probability_name", key.ProbabilityName)
	}

	return api.Variable{
		ID:         variableID(g.Name, ordinal, key),
		Name:       name,
		Dimensions: dims,
		Shape:      shape,
		Attributes: attrs,
	}
}

// variableID is a stable key distinct from the display name, used by
// grib/reader to map a Reader.Read call back to its VariableIndex
// without relying on the (possibly disambiguated) display name -- the
// side table spec §9 calls for in place of setSPobject. VarKey fields
// alone are not unique: two distinct VariableIndex values in the same
// group (or across groups) may share table version, parameter, level
// type, interval type and derived type, the exact case
// naming.Disambiguate exists to rename for display. ordinal is each
// variable's position within its group's Variables/VariablesPartitioned
// slice, which Project and BuildSideTable both derive by iterating the
// same slice in the same order, so the two call sites always agree.
func variableID(groupName string, ordinal int, key index.VarKey) string {
	return fmt.Sprintf("%s:%d:%d:%d:%d:%d:%d", groupName, ordinal, key.TableVersion, key.Parameter, key.LevelType, key.IntvType, key.EnsDerivedType)
}
