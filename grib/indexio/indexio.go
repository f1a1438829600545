// Package indexio decodes the on-disk index byte stream into an
// *index.Collection, dispatching on the magic prefix spec §6 requires
// ("a byte stream recognized by a magic prefix... a short ASCII tag").
// Grounded on the teacher's netcdf4.go getKind/Open/New dispatch (read
// a short fixed prefix, switch on it, delegate to a sub-package) and on
// util/binary.go's MustRead-over-thrower style for the rest of the
// stream, adapted to big-endian (GRIB1 wire data is big-endian; keeping
// the index big-endian too avoids a second byte-order convention in
// the same toolchain).
package indexio

import (
	"errors"
	"io"

	"github.com/gribio/gribds/grib/api"
	"github.com/gribio/gribds/grib/index"
)

// MagicFlat and MagicPartitioned are the two recognized prefixes, per
// spec §6: "one value for flat collection indexes, a distinct value for
// time-partitioned indexes."
const (
	MagicFlat        = "GC1F"
	MagicPartitioned = "GC1P"
)

// ErrBadMagic is IndexCorrupt: the stream's first 4 bytes matched
// neither recognized prefix.
var ErrBadMagic = errors.New("indexio: unrecognized magic prefix")

// Load reads stream from its current position and returns the decoded
// Collection, wired to openFile for its physical records. A
// time-partitioned stream's per-partition sub-streams are read lazily,
// one PartitionLoader per partition (see partition.go), matching spec
// §4.1's "hydrated when that partition is first touched."
func Load(stream io.ReadSeeker, openFile api.FileOpener) (*index.Collection, error) {
	var magic [4]byte
	if _, err := io.ReadFull(stream, magic[:]); err != nil {
		return nil, withKind(api.KindIndexCorrupt, err)
	}

	switch string(magic[:]) {
	case MagicFlat:
		coll, err := readFlatCollection(stream)
		if err != nil {
			return nil, withKind(api.KindIndexCorrupt, err)
		}
		coll.OpenFile = openFile
		return coll, nil
	case MagicPartitioned:
		coll, err := readPartitionedCollection(stream, openFile)
		if err != nil {
			return nil, withKind(api.KindIndexCorrupt, err)
		}
		return coll, nil
	default:
		return nil, withKind(api.KindIndexCorrupt, ErrBadMagic)
	}
}

func withKind(kind api.Kind, err error) error {
	return api.NewError(kind, err)
}
