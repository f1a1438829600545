// Package codec defines the boundary to the external GRIB1 message
// codec (spec §6): the core never parses raw GRIB1 bytes itself,
// everything in grib/reader talks to this interface only. Grounded on
// the shape of the teacher's own package boundary between netcdf4.go's
// dispatcher and the cdf/hdf5 sub-packages -- a narrow typed contract
// rather than a generic byte-stream reader.
package codec

import "io"

// Header is the diagnostic metadata readHeader extracts for
// Reader.DetailInfo, per spec §6: not on the hot path.
type Header struct {
	TableVersion int
	Parameter    int
	Center       int
	Subcenter    int
	RefDate      string
	ForecastTime int
	IntvType     int
}

// Codec is the external GRIB1 message codec. isValidGrib1 is used only
// by the (out of scope) auto-indexing fallback; Decode and ReadHeader
// are what grib/reader calls on the hot path and the diagnostic path
// respectively.
type Codec interface {
	// IsValidGrib1 reports whether stream looks like a raw sequence of
	// GRIB1 messages, starting at the stream's current position.
	IsValidGrib1(stream io.Reader) bool

	// Decode reads exactly one message's 2-D data grid at byte offset
	// pos within stream, returning nPoints = nx*ny floats. The caller --
	// grib/reader -- indexes the result as grid[y*nx+x] and does no
	// scanMode conversion of its own; scanMode and nx are passed through
	// to the codec.
	Decode(stream io.ReadSeeker, pos int64, nPoints, scanMode, nx int) ([]float32, error)

	// ReadHeader reads one message's metadata at byte offset pos.
	ReadHeader(stream io.ReadSeeker, pos int64) (Header, error)
}
