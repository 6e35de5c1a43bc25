// Package stream implements a typed sequential stream message body.
//
// A Message is an ordered sequence of tagged primitive Fields. It's created
// empty and WriteOnly, filled by a producer with Write* calls, and switched
// to ReadOnly by Reset, after which Fields are consumed in write order by
// Read* calls. ClearBody returns a Message of either Mode to an empty,
// WriteOnly body.
//
// Reads coerce the stored Field to the requested type per a fixed
// conversion matrix: integers widen (byte → short → int → long), float
// widens to double, every scalar formats as a String, and a String parses
// as any scalar except Char. Bytes convert to nothing but Bytes. A read
// outside the matrix fails with a FormatError and leaves the Message as it
// was. Bytes Fields may be read in chunks with ReadBytes, or whole with
// ReadObject.
//
// All operations fail with an *Error, which may be matched against the
// package sentinels (ErrEOF, ErrFormat, ...) using errors.Is.
package stream
