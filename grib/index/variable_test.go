package index

import "testing"

func TestCalcIndexOrdering(t *testing.T) {
	// (t*nens+e)*nverts+v
	if got := CalcIndex(1, 2, 3, 4, 5); got != (1*4+2)*5+3 {
		t.Fatalf("CalcIndex = %d", got)
	}
}

func TestSetRecordsAndRecordAt(t *testing.T) {
	vi := &VariableIndex{}
	vi.SetRecords([]Record{{FileNo: 0, Pos: 0}, {FileNo: 1, Pos: 5}})

	if got := vi.RecordAt(1); got.FileNo != 1 || got.Pos != 5 {
		t.Fatalf("RecordAt(1) = %+v", got)
	}
	if got := vi.RecordsSnapshot(); len(got) != 2 {
		t.Fatalf("RecordsSnapshot len = %d, want 2", len(got))
	}
}
