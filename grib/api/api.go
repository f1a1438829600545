// Package api is common to the index model, schema projector, planner and
// reader packages. It mirrors the role of the teacher's netcdf/api
// package: the small set of interfaces and value types that let the
// concrete implementations (grib/index, grib/schema, grib/reader) stay
// decoupled from each other and from the facade in package grib.
package api

import (
	"context"
	"io"
)

// ReadSeekCloser is a physical GRIB1 file handle, local or remote.
type ReadSeekCloser interface {
	io.ReadSeeker
	io.Closer
}

// FileOpener resolves a dense file number to an open handle. Implemented
// by grib/localfile (local disk) and grib/remotefile (S3).
type FileOpener func(fileno int) (ReadSeekCloser, error)

// CoordVar is one coordinate variable produced by the schema projector:
// a time/vertical/ensemble/horizontal axis, or a "<name>_bounds" child.
type CoordVar struct {
	Name       string
	DimName    string
	Values     any // []int64, []float32, or [][2]float32/[][2]int64 for bounds
	Attributes *AttributeMap
}

// Variable is one data variable: the schema-level view of a VariableIndex.
type Variable struct {
	ID         string // opaque key the reader resolves back to a VariableIndex
	Name       string
	Dimensions []string // canonical order: time, ens?, vert?, y, x
	Shape      []int64
	Attributes *AttributeMap
}

// Group is the schema for one horizontal-coordinate group: its coordinate
// variables plus its data variables.
type Group struct {
	Name        string
	CoordVars   []CoordVar
	DataVars    []Variable
	GlobalAttrs *AttributeMap
}

// Schema is the full projected dataset: one or more horizontal-coordinate
// groups, as produced by grib/schema.
type Schema struct {
	Groups []Group
}

// Range is a selection along one canonical axis: first, last, stride,
// enumerating first, first+stride, ..., <= last. First <= Last and
// Stride >= 1 are validated by api.ValidateRange before planning.
type Range struct {
	First  int64 `validate:"gte=0"`
	Last   int64 `validate:"gtefield=First"`
	Stride int64 `validate:"gte=1"`
}

// Len returns the number of indices the range enumerates.
func (r Range) Len() int64 {
	if r.Last < r.First {
		return 0
	}
	return (r.Last-r.First)/r.Stride + 1
}

// Index returns the dense position of global within this range's
// selection (0-based), matching the teacher-derived resultIndex math in
// grib/plan.
func (r Range) Index(global int64) int64 {
	return (global - r.First) / r.Stride
}

// DenseFloatArray is the result of Reader.Read: a flat row-major buffer
// plus the shape it represents, in the same (time, ens?, vert?, y, x)
// canonical order as the Variable's Dimensions.
type DenseFloatArray struct {
	Shape []int64
	Data  []float32
}

// Reader is the read-path entry point a caller (or the enclosing dataset
// facade, out of scope here) uses once a collection has been opened.
type Reader interface {
	Read(ctx context.Context, variableID string, ranges []Range) (DenseFloatArray, error)
	Close() error
	DetailInfo() string
}

// Options replaces the original's free-form sendIospMessage channel with
// a typed struct populated before Open, per spec §9's redesign
// instruction.
type Options struct {
	// ParameterTablePath, if set, loads a replacement GRIB1 parameter
	// table (the "GribParameterTable" option).
	ParameterTablePath string
	// ParameterTableLookupPath, if set, loads a second parameter CSV in
	// the same column layout and merges its entries over the first (the
	// "GribParameterTableLookup" option). It is not a lookup of table
	// files by center/subcenter/version.
	ParameterTableLookupPath string
}
