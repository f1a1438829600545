package paramtable

import "fmt"

type paramKey struct {
	center, subcenter, tableVersion, paramNum int
}

// Builtin is a small always-available parameter table covering the
// common NCEP table-2 entries, the table the original source falls
// back to when no site-supplied table is configured. It is never a
// complete WMO table -- that is what Options.ParameterTablePath is for
// (load.go) -- but it keeps naming deterministic for collections that
// never configure one, matching makeVariableName's null-param fallback
// only kicking in for genuinely unknown entries.
type Builtin struct {
	params     map[paramKey]ParameterDescriptor
	levelShort map[int]string
	levelDesc  map[int]string
	levelUnit  map[int]VertUnit
	statTypes  map[int]StatType
}

// NewBuiltin constructs the default table.
func NewBuiltin() *Builtin {
	b := &Builtin{
		params:     map[paramKey]ParameterDescriptor{},
		levelShort: map[int]string{},
		levelDesc:  map[int]string{},
		levelUnit:  map[int]VertUnit{},
		statTypes: map[int]StatType{
			0: {Abbrev: "ave", Description: "Average"},
			1: {Abbrev: "acc", Description: "Accumulation"},
			2: {Abbrev: "dif", Description: "Difference"},
			3: {Abbrev: "max", Description: "Maximum"},
			4: {Abbrev: "min", Description: "Minimum"},
		},
	}
	for _, p := range defaultNCEPTable2 {
		b.params[paramKey{7, 0, 2, p.Number}] = p
	}
	for code, name := range defaultLevelShort {
		b.levelShort[code] = name
	}
	for code, unit := range defaultLevelUnit {
		b.levelUnit[code] = unit
	}
	for code, desc := range defaultLevelDescription {
		b.levelDesc[code] = desc
	}
	return b
}

func (b *Builtin) GetParameter(center, subcenter, tableVersion, paramNum int) (*ParameterDescriptor, bool) {
	p, ok := b.params[paramKey{center, subcenter, tableVersion, paramNum}]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (b *Builtin) GetLevelShort(code int) string {
	if name, ok := b.levelShort[code]; ok {
		return name
	}
	return fmt.Sprintf("level%d", code)
}

func (b *Builtin) GetLevelUnit(code int) (VertUnit, bool) {
	u, ok := b.levelUnit[code]
	return u, ok
}

func (b *Builtin) GetLevelDescription(code int) string {
	if desc, ok := b.levelDesc[code]; ok {
		return desc
	}
	return b.GetLevelShort(code)
}

func (b *Builtin) GetStatType(intvType int) (*StatType, bool) {
	st, ok := b.statTypes[intvType]
	if !ok {
		return nil, false
	}
	return &st, true
}

// defaultNCEPTable2 covers the handful of NCEP table 2 parameters
// exercised by this module's own tests and examples; a real deployment
// supplies its own table via Options.
var defaultNCEPTable2 = []ParameterDescriptor{
	{Number: 11, Name: "TMP", Unit: "K", Abbrev: "TMP", Description: "Temperature"},
	{Number: 33, Name: "UGRD", Unit: "m/s", Abbrev: "UGRD", Description: "u-component of wind"},
	{Number: 34, Name: "VGRD", Unit: "m/s", Abbrev: "VGRD", Description: "v-component of wind"},
	{Number: 2, Name: "PRMSL", Unit: "Pa", Abbrev: "PRMSL", Description: "Pressure reduced to MSL"},
	{Number: 61, Name: "APCP", Unit: "kg/m^2", Abbrev: "APCP", Description: "Total precipitation"},
	{Number: 7, Name: "HGT", Unit: "gpm", Abbrev: "HGT", Description: "Geopotential height"},
}

var defaultLevelShort = map[int]string{
	1:   "surface",
	100: "isobaric",
	102: "msl",
	105: "height_above_ground",
	109: "hybrid",
	200: "entire_atmosphere",
}

var defaultLevelDescription = map[int]string{
	1:   "Ground or water surface",
	100: "Isobaric surface",
	102: "Mean sea level",
	105: "Specified height level above ground",
	109: "Hybrid level",
	200: "Entire atmosphere (considered as a single layer)",
}

var defaultLevelUnit = map[int]VertUnit{
	100: "Pa",
	105: "m",
}
