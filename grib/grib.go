// Package grib is the top-level facade: Open/New mirror the teacher's
// netcdf4.go dispatcher shape (read the index stream, hand it to the
// right sub-package, assemble the result), adapted from "which file
// format is this" to "decode the index, project its schema, build a
// Reader over it."
package grib

import (
	"io"
	"os"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/codec"
	"github.com/gribio/gribds/grib/indexio"
	"github.com/gribio/gribds/grib/paramtable"
	"github.com/gribio/gribds/grib/reader"
	"github.com/gribio/gribds/grib/schema"
	"github.com/gribio/gribds/internal"
)

// Dataset is an opened collection: its projected schema (for listing
// groups/variables/coordinates) plus the api.Reader that serves actual
// data requests by variable ID.
type Dataset struct {
	Schema api.Schema
	api.Reader
}

// Open opens a collection by index-file path, resolving its physical
// GRIB1 messages through openFile.
func Open(indexPath string, openFile api.FileOpener, c codec.Codec, opts api.Options) (*Dataset, error) {
	f, err := os.Open(indexPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return New(f, openFile, c, opts)
}

// New is like Open but takes an already-open index stream. Mirrors the
// teacher's New(io.ReadSeeker): on success it has read everything it
// needs from stream and does not retain it, which is why Open can close
// its index file as soon as New returns.
func New(stream io.ReadSeeker, openFile api.FileOpener, c codec.Codec, opts api.Options) (*Dataset, error) {
	params, err := loadParams(opts)
	if err != nil {
		return nil, err
	}

	coll, err := indexio.Load(stream, openFile)
	if err != nil {
		return nil, err
	}

	var out api.Schema
	vars := map[string]reader.VarEntry{}
	for _, g := range coll.Groups {
		out.Groups = append(out.Groups, schema.Project(params, coll.Center, coll.Subcenter, g))
	}
	for id, entry := range schema.BuildSideTable(coll) {
		vars[id] = entry
	}

	return &Dataset{
		Schema: out,
		Reader: reader.New(coll, vars, c, internal.NewLogger()),
	}, nil
}

func loadParams(opts api.Options) (paramtable.Service, error) {
	svc, err := paramtable.LoadParameterTable(opts.ParameterTablePath)
	if err != nil {
		return nil, err
	}
	return paramtable.LoadParameterTableLookup(svc, opts.ParameterTableLookupPath)
}
