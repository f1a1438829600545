package indexio

import (
	"encoding/binary"
	"io"

	"github.com/batchatco/go-thrower"
)

// byteOrder is the wire byte order for the whole index stream, chosen
// big-endian to match GRIB1's own wire convention rather than
// introducing a second byte-order rule in the same toolchain.
var byteOrder binary.ByteOrder = binary.BigEndian

func mustRead(r io.Reader, data any) {
	thrower.ThrowIfError(binary.Read(r, byteOrder, data))
}

func readI32(r io.Reader) int {
	var v int32
	mustRead(r, &v)
	return int(v)
}

func readI64(r io.Reader) int64 {
	var v int64
	mustRead(r, &v)
	return v
}

func readF64(r io.Reader) float64 {
	var v float64
	mustRead(r, &v)
	return v
}

func readBool(r io.Reader) bool {
	var v uint8
	mustRead(r, &v)
	return v != 0
}

func readString(r io.Reader) string {
	n := readI32(r)
	if n == 0 {
		return ""
	}
	b := make([]byte, n)
	_, err := io.ReadFull(r, b)
	thrower.ThrowIfError(err)
	return string(b)
}

func mustWrite(w io.Writer, data any) {
	thrower.ThrowIfError(binary.Write(w, byteOrder, data))
}

func writeI32(w io.Writer, v int) {
	mustWrite(w, int32(v))
}

func writeI64(w io.Writer, v int64) {
	mustWrite(w, v)
}

func writeF64(w io.Writer, v float64) {
	mustWrite(w, v)
}

func writeBool(w io.Writer, v bool) {
	var b uint8
	if v {
		b = 1
	}
	mustWrite(w, b)
}

func writeString(w io.Writer, s string) {
	writeI32(w, len(s))
	if len(s) == 0 {
		return
	}
	_, err := w.Write([]byte(s))
	thrower.ThrowIfError(err)
}
