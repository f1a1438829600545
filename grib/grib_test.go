package grib

import (
	"bytes"
	"context"
	"testing"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/codec"
	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/indexio"
)

type fakeHandle struct{}

func (fakeHandle) Read(p []byte) (int, error)                { return 0, nil }
func (fakeHandle) Seek(off int64, whence int) (int64, error) { return 0, nil }
func (fakeHandle) Close() error                              { return nil }

func openAlwaysOK(fileno int) (api.ReadSeekCloser, error) {
	return fakeHandle{}, nil
}

func buildSampleIndexBytes(t *testing.T) []byte {
	t.Helper()
	g := &index.Group{
		Name: "default",
		HCS:  index.HorizCoordSys{Kind: index.GridLatLon, Nx: 2, Ny: 2, StartX: 0, StartY: 0, Dx: 1, Dy: 1},
		TimeCoords: []index.TimeCoord{
			{Name: "time", Units: "hours since 2020-01-01", Offsets: []int64{0, 6}},
		},
	}
	vi := &index.VariableIndex{
		TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1,
		TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g,
	}
	vi.SetRecords([]index.Record{
		{FileNo: 0, Pos: 0},
		{FileNo: 0, Pos: 100},
	})
	g.Variables = []*index.VariableIndex{vi}
	coll := &index.Collection{Center: 7, Subcenter: 0, LocalTableVersion: 2, GenProcessID: 96, Groups: []*index.Group{g}}

	var buf bytes.Buffer
	if err := indexio.WriteFlatCollection(&buf, coll); err != nil {
		t.Fatalf("WriteFlatCollection: %v", err)
	}
	return buf.Bytes()
}

func TestOpenProjectsSchemaAndServesReads(t *testing.T) {
	raw := buildSampleIndexBytes(t)

	ds, err := New(bytes.NewReader(raw), openAlwaysOK, codec.NewStub(), api.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ds.Close()

	if len(ds.Schema.Groups) != 1 {
		t.Fatalf("len(Groups) = %d, want 1", len(ds.Schema.Groups))
	}
	dataVars := ds.Schema.Groups[0].DataVars
	if len(dataVars) != 1 {
		t.Fatalf("len(DataVars) = %d, want 1", len(dataVars))
	}
	if dataVars[0].Name != "Temperature_surface" {
		t.Fatalf("Name = %q", dataVars[0].Name)
	}

	info := ds.DetailInfo()
	if info == "" {
		t.Fatal("expected non-empty DetailInfo")
	}

	_, err = ds.Read(context.Background(), dataVars[0].ID, []api.Range{
		{First: 0, Last: 1, Stride: 1},
		{First: 0, Last: 1, Stride: 1},
		{First: 0, Last: 1, Stride: 1},
	})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
}

type bytesHandle struct {
	r *bytes.Reader
}

func (h *bytesHandle) Read(p []byte) (int, error)                { return h.r.Read(p) }
func (h *bytesHandle) Seek(off int64, whence int) (int64, error) { return h.r.Seek(off, whence) }
func (h *bytesHandle) Close() error                              { return nil }

// buildPartitionedIndexBytes builds a two-partition collection: local
// time indices 0,1 live in partition 0, local time index 0 lives in
// partition 1, and the top-level group's union stitches them into a
// single logical 3-step time axis. Each partition's own flat
// sub-collection is encoded as its own "GC1F" image, served through
// openPartitionIndex by partition number -- the same split
// readPartitionedCollection expects on the read side.
func buildPartitionedIndexBytes(t *testing.T) ([]byte, api.FileOpener) {
	t.Helper()

	newPartitionGroup := func(offsets []int64, recs []index.Record) *index.Collection {
		g := &index.Group{
			Name: "default",
			HCS:  index.HorizCoordSys{Kind: index.GridLatLon, Nx: 2, Ny: 2},
			TimeCoords: []index.TimeCoord{
				{Name: "time", Units: "hours since 2020-01-01", Offsets: offsets},
			},
		}
		vi := &index.VariableIndex{
			TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1,
			TimeIdx: 0, VertIdx: -1, EnsIdx: -1, Group: g,
		}
		vi.SetRecords(recs)
		g.Variables = []*index.VariableIndex{vi}
		return &index.Collection{Groups: []*index.Group{g}}
	}

	part0 := newPartitionGroup([]int64{0, 6}, []index.Record{
		{FileNo: 0, Pos: 0},
		{FileNo: 0, Pos: 100},
	})
	part1 := newPartitionGroup([]int64{12}, []index.Record{
		{FileNo: 0, Pos: 200},
	})

	var buf0, buf1 bytes.Buffer
	if err := indexio.WriteFlatCollection(&buf0, part0); err != nil {
		t.Fatalf("WriteFlatCollection(part0): %v", err)
	}
	if err := indexio.WriteFlatCollection(&buf1, part1); err != nil {
		t.Fatalf("WriteFlatCollection(part1): %v", err)
	}
	partitionBytes := [][]byte{buf0.Bytes(), buf1.Bytes()}

	openPartitionIndex := func(partno int) (api.ReadSeekCloser, error) {
		if partno < 0 || partno >= len(partitionBytes) {
			return nil, api.ErrNotFound
		}
		return &bytesHandle{r: bytes.NewReader(partitionBytes[partno])}, nil
	}

	top := &index.Group{
		Name: "default",
		HCS:  index.HorizCoordSys{Kind: index.GridLatLon, Nx: 2, Ny: 2},
		UnionTimeCoords: []index.TimeCoordUnion{
			{
				Name:  "time",
				Units: "hours since 2020-01-01",
				Vals: []index.TimeCoordUnionVal{
					{PartitionIndex: 0, LocalIndex: 0},
					{PartitionIndex: 0, LocalIndex: 1},
					{PartitionIndex: 1, LocalIndex: 0},
				},
			},
		},
	}
	vp := &index.VariableIndexPartitioned{
		EnsIdx: -1, VertIdx: -1,
		GroupName: "default",
		VarKey:    index.VarKey{TableVersion: 2, Parameter: 11, LevelType: 1, IntvType: -1},
		TimeCoord: &top.UnionTimeCoords[0],
	}
	top.VariablesPartitioned = []*index.VariableIndexPartitioned{vp}

	topColl := &index.Collection{
		Center: 7, Subcenter: 0, LocalTableVersion: 2, GenProcessID: 96,
		Groups: []*index.Group{top},
		Partitions: []*index.Partition{
			index.NewPartition("part0", nil),
			index.NewPartition("part1", nil),
		},
	}

	var mainBuf bytes.Buffer
	if err := indexio.WritePartitionedCollection(&mainBuf, topColl); err != nil {
		t.Fatalf("WritePartitionedCollection: %v", err)
	}
	return mainBuf.Bytes(), openPartitionIndex
}

func TestOpenPartitionedServesReadsAcrossPartitions(t *testing.T) {
	raw, openPartitionIndex := buildPartitionedIndexBytes(t)

	ds, err := New(bytes.NewReader(raw), openPartitionIndex, codec.NewStub(), api.Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ds.Close()

	dataVars := ds.Schema.Groups[0].DataVars
	if len(dataVars) != 1 {
		t.Fatalf("len(DataVars) = %d, want 1", len(dataVars))
	}

	arr, err := ds.Read(context.Background(), dataVars[0].ID, []api.Range{
		{First: 0, Last: 2, Stride: 1}, // time, spans both partitions
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
}
