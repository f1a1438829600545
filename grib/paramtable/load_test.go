package paramtable

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadParameterTableOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "params.csv",
		"center,subcenter,tableVersion,paramNum,name,unit,abbrev,description\n"+
			"7,0,2,11,CUSTOM,degC,CTMP,Custom temperature\n")

	svc, err := LoadParameterTable(path)
	if err != nil {
		t.Fatalf("LoadParameterTable: %v", err)
	}
	p, ok := svc.GetParameter(7, 0, 2, 11)
	if !ok {
		t.Fatal("expected override entry")
	}
	if p.Unit != "degC" || p.Abbrev != "CTMP" {
		t.Fatalf("p = %+v", p)
	}
}

func TestLoadParameterTableLookupMergesIntoExisting(t *testing.T) {
	dir := t.TempDir()
	base := writeCSV(t, dir, "base.csv",
		"center,subcenter,tableVersion,paramNum,name,unit,abbrev,description\n"+
			"7,0,2,200,FOO,unit1,FOO,Foo parameter\n")
	extra := writeCSV(t, dir, "lookup.csv",
		"center,subcenter,tableVersion,paramNum,name,unit,abbrev,description\n"+
			"8,1,3,201,BAR,unit2,BAR,Bar parameter\n")

	svc, err := LoadParameterTable(base)
	if err != nil {
		t.Fatalf("LoadParameterTable: %v", err)
	}
	svc, err = LoadParameterTableLookup(svc, extra)
	if err != nil {
		t.Fatalf("LoadParameterTableLookup: %v", err)
	}

	if _, ok := svc.GetParameter(7, 0, 2, 200); !ok {
		t.Fatal("expected base entry to survive merge")
	}
	if _, ok := svc.GetParameter(8, 1, 3, 201); !ok {
		t.Fatal("expected lookup entry to be merged in")
	}
}
