package schema

import (
	"testing"

	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/paramtable"
)

func newTestGroup() *index.Group {
	g := &index.Group{
		Name: "default",
		HCS:  index.HorizCoordSys{Kind: index.GridLatLon, Nx: 4, Ny: 3, StartX: 0, StartY: 0, Dx: 1, Dy: 1},
		TimeCoords: []index.TimeCoord{
			{Name: "time", Units: "hours since 2020-01-01", Offsets: []int64{0, 6}},
		},
	}
	vi1 := &index.VariableIndex{TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1, TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g}
	vi1.SetRecords([]index.Record{{FileNo: 0, Pos: 0}, {FileNo: 0, Pos: 100}})
	vi2 := &index.VariableIndex{TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1, TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g}
	vi2.SetRecords([]index.Record{{FileNo: 0, Pos: 200}, {FileNo: 0, Pos: 300}})
	g.Variables = []*index.VariableIndex{vi1, vi2}
	return g
}

func TestProjectDisambiguatesDuplicateNames(t *testing.T) {
	params := paramtable.NewBuiltin()
	g := newTestGroup()
	out := Project(params, 7, 0, g)
	if len(out.DataVars) != 2 {
		t.Fatalf("len(DataVars) = %d, want 2", len(out.DataVars))
	}
	if out.DataVars[0].Name != "Temperature_surface" {
		t.Fatalf("DataVars[0].Name = %q", out.DataVars[0].Name)
	}
	if out.DataVars[1].Name != "Temperature_surface_1" {
		t.Fatalf("DataVars[1].Name = %q", out.DataVars[1].Name)
	}
}

func TestProjectDataVariableDims(t *testing.T) {
	params := paramtable.NewBuiltin()
	g := newTestGroup()
	out := Project(params, 7, 0, g)
	want := []string{"time", "y", "x"}
	got := out.DataVars[0].Dimensions
	if len(got) != len(want) {
		t.Fatalf("Dimensions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Dimensions[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestProjectHorizontalCoordVars(t *testing.T) {
	params := paramtable.NewBuiltin()
	g := newTestGroup()
	out := Project(params, 7, 0, g)
	var hasLat, hasLon bool
	for _, cv := range out.CoordVars {
		if cv.Name == "lat" {
			hasLat = true
		}
		if cv.Name == "lon" {
			hasLon = true
		}
	}
	if !hasLat || !hasLon {
		t.Fatalf("expected lat and lon coord vars, got %+v", out.CoordVars)
	}
}

func TestBuildSideTableCoversEveryVariable(t *testing.T) {
	g := newTestGroup()
	coll := &index.Collection{Groups: []*index.Group{g}}
	side := BuildSideTable(coll)
	if len(side) != 2 {
		t.Fatalf("len(side table) = %d, want 2", len(side))
	}
}
