// Package labels defines well-known label names and values of streammsg
// bodies, such as the content types of body encodings.
package labels

const (
	// ContentType of an encoded message body, also known as a MIME or
	// media-type. Must parse as per RFC 1521.
	ContentType = "content-type"

	// ContentType_StreamFixed is a ContentType for stream message bodies
	// encoded with a fixed header, consisting of a 4-byte "magic word" (for
	// verifying body integrity) followed by a 4-byte little-endian length,
	// followed by the Protobuf wire encoding of each field in order.
	// StreamFixed is implemented by codec.Fixed.
	ContentType_StreamFixed = "application/x-stream-fixed"
	// ContentType_StreamJSON is a ContentType for stream message bodies encoded
	// as a single line of JSON: an array of field objects, in order.
	// StreamJSON is implemented by codec.JSON.
	ContentType_StreamJSON = "application/x-stream-json"

	// ContentEncoding of an encoded message body names the compression
	// applied to it. Compare to the HTTP Content-Encoding header.
	ContentEncoding = "content-encoding"
)

// BodyContentTypes are ContentTypes having a registered body codec.
var BodyContentTypes = map[string]struct{}{
	ContentType_StreamFixed: {},
	ContentType_StreamJSON:  {},
}
