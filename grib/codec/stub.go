package codec

import "io"

// Stub is a reference Codec for tests (spec §8's "decoder stub"): it
// never touches the supplied stream, instead returning whatever Grids
// says lives at a given byte offset. It has no generator hook: a test
// that wants the "placement identity" property (§8 property 2),
// grid[y,x] = encode(t,e,v,y,x), registers each such grid in Grids
// itself, without needing a real GRIB1 byte encoding.
type Stub struct {
	// Grids maps a byte offset to the nPoints-length grid Decode should
	// return for it, in native (scanMode-dependent) order. Missing
	// entries are a test bug, not a runtime DecodeFailure -- Decode
	// returns an error for an absent offset so tests can also exercise
	// the DecodeFailure/FileUnavailable containment policy deliberately.
	Grids map[int64][]float32

	// FailAt, when non-nil, names offsets Decode should fail for
	// (Record.Pos != MissingRecord but the message is unreadable, spec
	// §9's open question), exercising the DecodeFailure containment
	// path distinctly from a never-indexed offset.
	FailAt map[int64]bool
}

func NewStub() *Stub {
	return &Stub{Grids: map[int64][]float32{}, FailAt: map[int64]bool{}}
}

func (s *Stub) IsValidGrib1(stream io.Reader) bool {
	return true
}

func (s *Stub) Decode(stream io.ReadSeeker, pos int64, nPoints, scanMode, nx int) ([]float32, error) {
	if s.FailAt[pos] {
		return nil, ErrStubDecodeFailure
	}
	grid, ok := s.Grids[pos]
	if !ok {
		return nil, ErrStubDecodeFailure
	}
	if len(grid) != nPoints {
		return nil, ErrStubDecodeFailure
	}
	return grid, nil
}

func (s *Stub) ReadHeader(stream io.ReadSeeker, pos int64) (Header, error) {
	return Header{}, ErrStubDecodeFailure
}

// ErrStubDecodeFailure is the sentinel the Stub codec returns for any
// offset it wasn't told about, for a FailAt offset, for a registered
// grid whose length is not nPoints, and from every ReadHeader call.
var ErrStubDecodeFailure = stubError("codec: stub has no grid registered for this offset")

type stubError string

func (e stubError) Error() string { return string(e) }
