package paramtable

import "testing"

func TestBuiltinGetParameterKnown(t *testing.T) {
	b := NewBuiltin()
	p, ok := b.GetParameter(7, 0, 2, 11)
	if !ok {
		t.Fatal("expected TMP to be known")
	}
	if p.Abbrev != "TMP" || p.Unit != "K" {
		t.Fatalf("p = %+v", p)
	}
}

func TestBuiltinGetParameterUnknown(t *testing.T) {
	b := NewBuiltin()
	if _, ok := b.GetParameter(7, 0, 2, 9999); ok {
		t.Fatal("expected unknown parameter to miss")
	}
}

func TestBuiltinGetLevelShortFallsBackToGenericToken(t *testing.T) {
	b := NewBuiltin()
	if got := b.GetLevelShort(1); got != "surface" {
		t.Fatalf("GetLevelShort(1) = %q", got)
	}
	if got := b.GetLevelShort(777); got != "level777" {
		t.Fatalf("GetLevelShort(777) = %q", got)
	}
}

func TestBuiltinGetStatType(t *testing.T) {
	b := NewBuiltin()
	st, ok := b.GetStatType(1)
	if !ok || st.Abbrev != "acc" {
		t.Fatalf("GetStatType(1) = (%+v, %v)", st, ok)
	}
}

func TestLoadParameterTableWithEmptyPathReturnsBuiltin(t *testing.T) {
	svc, err := LoadParameterTable("")
	if err != nil {
		t.Fatalf("LoadParameterTable: %v", err)
	}
	if _, ok := svc.GetParameter(7, 0, 2, 11); !ok {
		t.Fatal("expected builtin TMP entry to survive")
	}
}
