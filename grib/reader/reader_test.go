package reader

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/codec"
	"github.com/gribio/gribds/grib/index"
)

type fakeHandle struct{}

func (fakeHandle) Read(p []byte) (int, error)                { return 0, nil }
func (fakeHandle) Seek(off int64, whence int) (int64, error) { return 0, nil }
func (fakeHandle) Close() error                              { return nil }

func openAlwaysOK(fileno int) (api.ReadSeekCloser, error) {
	return fakeHandle{}, nil
}

type fakeLogger struct {
	warnings []string
}

func (f *fakeLogger) Warnf(format string, v ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, v...))
}

func newFlatGroup() (*index.Group, *index.VariableIndex) {
	g := &index.Group{
		Name: "default",
		HCS:  index.HorizCoordSys{Nx: 2, Ny: 2},
		TimeCoords: []index.TimeCoord{
			{Name: "time", Offsets: []int64{0, 6, 12}},
		},
	}
	vi := &index.VariableIndex{
		TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1,
		TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g,
	}
	vi.SetRecords([]index.Record{
		{FileNo: 0, Pos: 0},
		{FileNo: 0, Pos: 100},
		{FileNo: 0, Pos: 200},
	})
	g.Variables = []*index.VariableIndex{vi}
	return g, vi
}

func TestReadFlatVariableProducesExpectedShape(t *testing.T) {
	g, vi := newFlatGroup()
	coll := &index.Collection{Groups: []*index.Group{g}, OpenFile: openAlwaysOK}

	stub := codec.NewStub()
	stub.Grids[0] = []float32{1, 2, 3, 4}
	stub.Grids[100] = []float32{5, 6, 7, 8}
	stub.Grids[200] = []float32{9, 10, 11, 12}

	id := "2:11:1:-1:0"
	r := New(coll, map[string]VarEntry{id: NewFlatVarEntry(g, vi)}, stub, nil)

	arr, err := r.Read(context.Background(), id, []api.Range{
		{First: 0, Last: 2, Stride: 1}, // time
		{First: 0, Last: 1, Stride: 1}, // y
		{First: 0, Last: 1, Stride: 1}, // x
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	wantShape := []int64{3, 2, 2}
	for i, w := range wantShape {
		if arr.Shape[i] != w {
			t.Fatalf("Shape = %v, want %v", arr.Shape, wantShape)
		}
	}
	if len(arr.Data) != 12 {
		t.Fatalf("len(Data) = %d, want 12", len(arr.Data))
	}
	if arr.Data[0] != 1 || arr.Data[4] != 5 || arr.Data[8] != 9 {
		t.Fatalf("Data = %v", arr.Data)
	}
}

func TestReadUnknownVariableIDIsInvalidRequest(t *testing.T) {
	g, vi := newFlatGroup()
	coll := &index.Collection{Groups: []*index.Group{g}, OpenFile: openAlwaysOK}
	r := New(coll, map[string]VarEntry{"2:11:1:-1:0": NewFlatVarEntry(g, vi)}, codec.NewStub(), nil)

	_, err := r.Read(context.Background(), "not-a-real-id", nil)
	if !api.IsKind(err, api.KindInvalidRequest) {
		t.Fatalf("err = %v, want InvalidRequest", err)
	}
}

func TestReadOutOfBoundsRangeIsInvalidRequest(t *testing.T) {
	g, vi := newFlatGroup()
	coll := &index.Collection{Groups: []*index.Group{g}, OpenFile: openAlwaysOK}
	id := "2:11:1:-1:0"
	r := New(coll, map[string]VarEntry{id: NewFlatVarEntry(g, vi)}, codec.NewStub(), nil)

	_, err := r.Read(context.Background(), id, []api.Range{
		{First: 0, Last: 50, Stride: 1}, // time out of bounds (axis length 3)
		{First: 0, Last: 1, Stride: 1},
		{First: 0, Last: 1, Stride: 1},
	})
	if !api.IsKind(err, api.KindInvalidRequest) {
		t.Fatalf("err = %v, want InvalidRequest", err)
	}
}

func TestReadMissingRecordLeavesNaN(t *testing.T) {
	g := &index.Group{
		Name: "default",
		HCS:  index.HorizCoordSys{Nx: 1, Ny: 1},
		TimeCoords: []index.TimeCoord{
			{Name: "time", Offsets: []int64{0, 6}},
		},
	}
	vi := &index.VariableIndex{
		TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1,
		TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g,
	}
	vi.SetRecords([]index.Record{
		{FileNo: 0, Pos: 0},
		{FileNo: 0, Pos: index.MissingRecord},
	})
	g.Variables = []*index.VariableIndex{vi}
	coll := &index.Collection{Groups: []*index.Group{g}, OpenFile: openAlwaysOK}

	stub := codec.NewStub()
	stub.Grids[0] = []float32{42}

	id := "2:11:1:-1:0"
	r := New(coll, map[string]VarEntry{id: NewFlatVarEntry(g, vi)}, stub, nil)

	arr, err := r.Read(context.Background(), id, []api.Range{
		{First: 0, Last: 1, Stride: 1},
		{First: 0, Last: 0, Stride: 1},
		{First: 0, Last: 0, Stride: 1},
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if arr.Data[0] != 42 {
		t.Fatalf("Data[0] = %v, want 42", arr.Data[0])
	}
	if !math.IsNaN(float64(arr.Data[1])) {
		t.Fatalf("Data[1] = %v, want NaN", arr.Data[1])
	}
}

func TestReadDecodeFailureLogsWarning(t *testing.T) {
	g, vi := newFlatGroup()
	coll := &index.Collection{Groups: []*index.Group{g}, OpenFile: openAlwaysOK}

	stub := codec.NewStub()
	stub.Grids[0] = []float32{1, 2, 3, 4}
	// Pos 100 and 200 are left unregistered, so Decode fails for them.

	log := &fakeLogger{}
	id := "2:11:1:-1:0"
	r := New(coll, map[string]VarEntry{id: NewFlatVarEntry(g, vi)}, stub, log)

	arr, err := r.Read(context.Background(), id, []api.Range{
		{First: 0, Last: 2, Stride: 1},
		{First: 0, Last: 1, Stride: 1},
		{First: 0, Last: 1, Stride: 1},
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if arr.Data[0] != 1 {
		t.Fatalf("Data[0] = %v, want 1", arr.Data[0])
	}
	for _, v := range arr.Data[4:] {
		if !math.IsNaN(float64(v)) {
			t.Fatalf("expected NaN for undecoded records, got %v", arr.Data)
		}
	}
	if len(log.warnings) != 2 {
		t.Fatalf("warnings = %v, want 2 decode-failure warnings", log.warnings)
	}
}
