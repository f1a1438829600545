// Package paramtable is the parameter-table lookup service GRIB1 naming
// depends on: given a center/subcenter/table-version/parameter-number
// tuple, and a vertical level code, it answers what the teacher's
// codebase would call "attribute metadata" -- description, unit,
// abbreviation -- without the naming package ever touching a table file
// itself.
package paramtable

// ParameterDescriptor describes one WMO/local GRIB1 parameter table
// entry. Unit and Abbrev are "" when the table doesn't carry one.
type ParameterDescriptor struct {
	Discipline  int
	Category    int
	Number      int
	Name        string
	Unit        string
	Abbrev      string
	Description string
	ID          string
}

// StatType names a statistical-processing (intvType) code.
type StatType struct {
	Abbrev      string
	Description string
}

// VertUnit is the unit string attached to a vertical level code.
type VertUnit string

// Service is the external parameter-table contract naming.go and
// schema.go read through; spec §6 treats the real table as an opaque
// collaborator, so Service is an interface rather than a concrete type
// -- Builtin below is the in-module default, and api.Options can
// supply a CSV-loaded one (see load.go) in its place.
type Service interface {
	GetParameter(center, subcenter, tableVersion, paramNum int) (*ParameterDescriptor, bool)
	GetLevelShort(code int) string
	GetLevelUnit(code int) (VertUnit, bool)
	GetLevelDescription(code int) string
	GetStatType(intvType int) (*StatType, bool)
}
