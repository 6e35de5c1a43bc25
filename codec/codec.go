// Package codec encodes the Fields of a stream.Message into bodies which may
// be carried by a transport, and decodes them again. Two body encodings are
// provided: Fixed, a compact binary encoding, and JSON. Encoded bodies may
// additionally be compressed with one of several Compression codecs.
package codec

import (
	"fmt"

	"go.gazette.dev/streammsg/labels"
	"go.gazette.dev/streammsg/stream"
)

// Codec encodes and decodes stream.Message bodies.
type Codec interface {
	// ContentType of the Codec's encoding.
	ContentType() string
	// Encode |fields| by appending into buffer |b|, which will be grown if
	// needed and returned.
	Encode(fields []stream.Field, b []byte) ([]byte, error)
	// Decode a complete body |b| into its Fields. Decoded Fields don't
	// reference |b|.
	Decode(b []byte) ([]stream.Field, error)
}

// ByContentType returns the Codec implementing the content type.
func ByContentType(contentType string) (Codec, error) {
	switch contentType {
	case labels.ContentType_StreamFixed:
		return Fixed, nil
	case labels.ContentType_StreamJSON:
		return JSON, nil
	default:
		return nil, fmt.Errorf(`unrecognized %s (%s)`, labels.ContentType, contentType)
	}
}

// ByName returns the Codec having short name "fixed" or "json", or otherwise
// the Codec of the full content type.
func ByName(name string) (Codec, error) {
	switch name {
	case "fixed":
		return Fixed, nil
	case "json":
		return JSON, nil
	default:
		return ByContentType(name)
	}
}

// EncodeMessage encodes the Fields of |msg| with Codec |c|. |msg| may be in
// either Mode, and its read progress is unaffected.
func EncodeMessage(c Codec, msg *stream.Message) ([]byte, error) {
	return c.Encode(msg.Fields(), nil)
}

// DecodeMessage decodes body |b| with Codec |c| into a new WriteOnly
// Message having Options |opts|.
func DecodeMessage(c Codec, b []byte, opts stream.Options) (*stream.Message, error) {
	var fields, err = c.Decode(b)
	if err != nil {
		return nil, err
	}
	var msg = stream.NewMessage(opts)
	for _, f := range fields {
		if err = msg.WriteField(f); err != nil {
			return nil, err
		}
	}
	return msg, nil
}
