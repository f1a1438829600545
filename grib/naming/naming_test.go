package naming

import (
	"testing"

	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/paramtable"
)

func TestShortNameKnownParameter(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 2, Parameter: 11, LevelType: 100, IntvType: -1}
	got := ShortName(params, 7, 0, key)
	want := "Temperature_isobaric"
	if got != want {
		t.Fatalf("ShortName = %q, want %q", got, want)
	}
}

func TestShortNameUnknownParameterFallsBackToVarToken(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 9, Parameter: 254, LevelType: UndefinedLevelType, IntvType: -1}
	got := ShortName(params, 60, 1, key)
	want := "VAR60-1-9-254"
	if got != want {
		t.Fatalf("ShortName = %q, want %q", got, want)
	}
}

func TestShortNameWithStatAbbrev(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 2, Parameter: 61, LevelType: 1, IntvType: 1}
	got := ShortName(params, 7, 0, key)
	want := "Total_precipitation_surface_acc"
	if got != want {
		t.Fatalf("ShortName = %q, want %q", got, want)
	}
}

func TestLongNameProbability(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 2, Parameter: 11, LevelType: UndefinedLevelType, IntvType: -1, ProbabilityName: "PROB_A"}
	got := LongName(params, 7, 0, key)
	want := "Probability Temperature"
	if got != want {
		t.Fatalf("LongName = %q, want %q", got, want)
	}
}

func TestLongNameWithLevelAndLayer(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 2, Parameter: 11, LevelType: 100, IsLayer: true, IntvType: -1}
	got := LongName(params, 7, 0, key)
	want := "Temperature @ isobaric layer"
	if got != want {
		t.Fatalf("LongName = %q, want %q", got, want)
	}
}

func TestUnitsUnknownParameterIsEmpty(t *testing.T) {
	params := paramtable.NewBuiltin()
	key := index.VarKey{TableVersion: 9, Parameter: 254}
	if got := Units(params, 60, 1, key); got != "" {
		t.Fatalf("Units = %q, want empty", got)
	}
}

func TestDisambiguateSuffixesInEncounterOrder(t *testing.T) {
	names := []string{"TMP_surface", "UGRD_surface", "TMP_surface", "TMP_surface"}
	got := Disambiguate(names)
	want := []string{"TMP_surface", "UGRD_surface", "TMP_surface_1", "TMP_surface_2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Disambiguate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
