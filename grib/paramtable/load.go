package paramtable

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// Loaded is a Service backed by a CSV parameter table plus the
// lookup table original_source's sendIospMessage keyed as
// "GribParameterTableLookup", layered over Builtin for anything the CSV
// doesn't define. Columns: center,subcenter,tableVersion,paramNum,name,
// unit,abbrev,description.
type Loaded struct {
	*Builtin
	overrides map[paramKey]ParameterDescriptor
}

// LoadParameterTable reads a CSV parameter table from path, falling
// back to Builtin's entries and level/stat tables for anything not
// present in the file. A nil path is equivalent to Builtin alone.
func LoadParameterTable(path string) (Service, error) {
	base := NewBuiltin()
	if path == "" {
		return base, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	overrides, err := parseParamCSV(f)
	if err != nil {
		return nil, err
	}
	return &Loaded{Builtin: base, overrides: overrides}, nil
}

// LoadParameterTableLookup merges a second CSV -- the "lookup" table
// original_source distinguishes from the main parameter table -- into
// an already-loaded Service. It uses the same column layout as the main
// table; each row adds or replaces the entry for its own
// center/subcenter/tableVersion/paramNum. No renumbering is done.
func LoadParameterTableLookup(svc Service, path string) (Service, error) {
	if path == "" {
		return svc, nil
	}
	l, ok := svc.(*Loaded)
	if !ok {
		l = &Loaded{Builtin: NewBuiltin(), overrides: map[paramKey]ParameterDescriptor{}}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	extra, err := parseParamCSV(f)
	if err != nil {
		return nil, err
	}
	for k, v := range extra {
		l.overrides[k] = v
	}
	return l, nil
}

func parseParamCSV(r io.Reader) (map[paramKey]ParameterDescriptor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 8
	out := map[paramKey]ParameterDescriptor{}
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			if rec[0] == "center" {
				continue
			}
		}
		center, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, err
		}
		subcenter, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, err
		}
		tableVersion, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, err
		}
		paramNum, err := strconv.Atoi(rec[3])
		if err != nil {
			return nil, err
		}
		out[paramKey{center, subcenter, tableVersion, paramNum}] = ParameterDescriptor{
			Number:      paramNum,
			Name:        rec[4],
			Unit:        rec[5],
			Abbrev:      rec[6],
			Description: rec[7],
		}
	}
	return out, nil
}

func (l *Loaded) GetParameter(center, subcenter, tableVersion, paramNum int) (*ParameterDescriptor, bool) {
	if p, ok := l.overrides[paramKey{center, subcenter, tableVersion, paramNum}]; ok {
		return &p, true
	}
	return l.Builtin.GetParameter(center, subcenter, tableVersion, paramNum)
}
