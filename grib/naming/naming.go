// Package naming implements the three deterministic pure functions
// that turn a *index.VariableIndex into display metadata: ShortName,
// LongName and Units. Grounded directly on original_source's
// Grib1Iosp.makeVariableName/makeVariableLongName/makeVariableUnits,
// translated from Formatter-based string building to fmt.Sprintf, with
// the short-name base token routed through internal.DeriveIdentifier
// (this module's equivalent of Grib1Parameter.makeNameFromDescription).
package naming

import (
	"fmt"

	"github.com/gribio/gribds/internal"
	"github.com/gribio/gribds/grib/index"
	"github.com/gribio/gribds/grib/paramtable"
)

// UndefinedLevelType mirrors GribNumbers.UNDEFINED: satellite data and
// similar products carry no vertical level at all.
const UndefinedLevelType = -1

// ShortName synthesizes the base variable name for key within its
// collection's center/subcenter, per spec §4.2 steps 1-4. Collision
// suffixing (step 5) is the caller's job (schema.go), since it needs
// visibility across all of a group's variables at once. key is
// index.VarKey rather than *index.VariableIndex so the same function
// serves both flat variables (via index.KeyOf) and
// VariableIndexPartitioned (whose VarKey field already carries the
// same naming-relevant metadata).
func ShortName(params paramtable.Service, center, subcenter int, key index.VarKey) string {
	var base string
	if p, ok := params.GetParameter(center, subcenter, key.TableVersion, key.Parameter); ok {
		base = internal.DeriveIdentifier(p.Description)
	} else {
		base = fmt.Sprintf("VAR%d-%d-%d-%d", center, subcenter, key.TableVersion, key.Parameter)
	}

	if key.LevelType != UndefinedLevelType {
		base = fmt.Sprintf("%s_%s", base, params.GetLevelShort(key.LevelType))
	}

	if key.IntvType >= 0 {
		if st, ok := params.GetStatType(key.IntvType); ok {
			base = fmt.Sprintf("%s_%s", base, st.Abbrev)
		}
	}

	if !internal.IsValidNetCDFName(base) {
		base = internal.DeriveIdentifier(base)
	}

	return base
}

// LongName synthesizes the human-readable description for key, per spec
// §4.2's long-name rule.
func LongName(params paramtable.Service, center, subcenter int, key index.VarKey) string {
	s := ""
	if key.ProbabilityName != "" {
		s += "Probability "
	}

	if p, ok := params.GetParameter(center, subcenter, key.TableVersion, key.Parameter); ok {
		s += p.Description
	} else {
		s += fmt.Sprintf("Unknown Parameter %d-%d-%d-%d", center, subcenter, key.TableVersion, key.Parameter)
	}

	if key.IntvType >= 0 {
		if st, ok := params.GetStatType(key.IntvType); ok {
			s += fmt.Sprintf(" (%s)", st.Description)
		}
	}

	if key.LevelType != UndefinedLevelType {
		s += fmt.Sprintf(" @ %s", params.GetLevelShort(key.LevelType))
		if key.IsLayer {
			s += " layer"
		}
	}

	return s
}

// Units returns key's physical unit string, or "" when the parameter
// table has none.
func Units(params paramtable.Service, center, subcenter int, key index.VarKey) string {
	p, ok := params.GetParameter(center, subcenter, key.TableVersion, key.Parameter)
	if !ok {
		return ""
	}
	return p.Unit
}

// Disambiguate appends "_1", "_2", ... to every name after the first
// occurrence of a duplicate, in encounter order, per spec §4.2 step 5
// and the "name uniqueness" invariant (spec §8 property 7). names is
// modified in place and also returned for convenience.
func Disambiguate(names []string) []string {
	seen := map[string]int{}
	for i, n := range names {
		count := seen[n]
		seen[n] = count + 1
		if count > 0 {
			names[i] = fmt.Sprintf("%s_%d", n, count)
		}
	}
	return names
}
