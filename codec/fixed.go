package codec

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
	"go.gazette.dev/streammsg/labels"
	"go.gazette.dev/streammsg/stream"
)

// Fixed is a Codec which encodes bodies in a binary format with a fixed-length
// header. Bodies are encoded as a 4-byte magic word for de-synchronization
// detection, followed by a little-endian uint32 length, followed by payload
// bytes. The payload is the Protobuf wire encoding of each Field in order,
// where a Field's number is its stream.Kind and null Strings and Bytes are
// field number 15 holding the Kind as a varint. Integer Kinds are zig-zag
// varints, Chars are varints, Floats and Doubles are fixed32 and fixed64,
// and Strings and Bytes are length-delimited.
var Fixed = new(fixedCodec)
var _ Codec = Fixed // Fixed is-a Codec.

// FixedHeaderLength is the number of leading header bytes of each body:
// A 4-byte magic word followed by a little-endian length.
const FixedHeaderLength = 8

type fixedCodec struct{}

// ContentType returns labels.ContentType_StreamFixed.
func (*fixedCodec) ContentType() string { return labels.ContentType_StreamFixed }

// Encode implements Codec. It returns an error only if a Field doesn't Validate.
func (*fixedCodec) Encode(fields []stream.Field, b []byte) ([]byte, error) {
	var offset = len(b)

	// Header consists of a magic word (for de-sync detection), and a 4-byte
	// length which is filled in once the payload is encoded.
	b = append(b, magicWord[:]...)
	b = append(b, 0, 0, 0, 0)

	var buf = proto.NewBuffer(b)
	for i, f := range fields {
		if err := encodeField(buf, f); err != nil {
			return nil, errors.WithMessagef(err, "encoding field %d", i)
		}
	}
	b = buf.Bytes()

	var size = len(b) - offset - FixedHeaderLength
	if uint64(size) > math.MaxUint32 {
		return nil, fmt.Errorf("body payload too large (%d bytes)", size)
	}
	binary.LittleEndian.PutUint32(b[offset+4:offset+8], uint32(size))
	return b, nil
}

// Decode verifies the body header and decodes its Fields. If the header
// indicates a desync occurred (incorrect magic word), ErrDesyncDetected is
// returned.
func (*fixedCodec) Decode(b []byte) ([]stream.Field, error) {
	if len(b) < FixedHeaderLength {
		return nil, io.ErrUnexpectedEOF
	} else if !matchesMagicWord(b) {
		return nil, ErrDesyncDetected
	}

	var size = binary.LittleEndian.Uint32(b[4:8])
	var payload = b[FixedHeaderLength:]

	if uint64(len(payload)) < uint64(size) {
		return nil, io.ErrUnexpectedEOF
	} else if uint64(len(payload)) > uint64(size) {
		return nil, fmt.Errorf("body has %d trailing bytes", uint64(len(payload))-uint64(size))
	}

	var fields []stream.Field
	for len(payload) != 0 {
		var f, n, err = decodeField(payload)
		if err != nil {
			return nil, errors.WithMessagef(err, "decoding field %d", len(fields))
		}
		fields = append(fields, f)
		payload = payload[n:]
	}
	return fields, nil
}

const (
	wireVarint  = 0
	wireFixed64 = 1
	wireBytes   = 2
	wireFixed32 = 5

	// fieldNull is the field number of null Strings and Bytes.
	fieldNull = 15
)

func wireType(k stream.Kind) uint64 {
	switch k {
	case stream.KindFloat:
		return wireFixed32
	case stream.KindDouble:
		return wireFixed64
	case stream.KindString, stream.KindBytes:
		return wireBytes
	default:
		return wireVarint
	}
}

func encodeKey(buf *proto.Buffer, num uint64, wire uint64) {
	_ = buf.EncodeVarint(num<<3 | wire)
}

func encodeField(buf *proto.Buffer, f stream.Field) error {
	if err := f.Validate(); err != nil {
		return err
	} else if f.IsNull() {
		encodeKey(buf, fieldNull, wireVarint)
		return buf.EncodeVarint(uint64(f.Kind))
	}
	encodeKey(buf, uint64(f.Kind), wireType(f.Kind))

	switch v := f.Value.(type) {
	case bool:
		if v {
			return buf.EncodeVarint(1)
		}
		return buf.EncodeVarint(0)
	case int8:
		return buf.EncodeZigzag64(uint64(int64(v)))
	case int16:
		return buf.EncodeZigzag64(uint64(int64(v)))
	case stream.Char:
		return buf.EncodeVarint(uint64(v))
	case int32:
		return buf.EncodeZigzag64(uint64(int64(v)))
	case int64:
		return buf.EncodeZigzag64(uint64(v))
	case float32:
		return buf.EncodeFixed32(uint64(math.Float32bits(v)))
	case float64:
		return buf.EncodeFixed64(math.Float64bits(v))
	case string:
		return buf.EncodeStringBytes(v)
	case []byte:
		return buf.EncodeRawBytes(v)
	default:
		panic("not reached") // Validate passed.
	}
}

// decodeField decodes the Field at the head of |b|, returning it and the
// number of bytes consumed.
func decodeField(b []byte) (stream.Field, int, error) {
	var key, n = proto.DecodeVarint(b)
	if n == 0 {
		return stream.Field{}, 0, errMalformedVarint
	}
	var num, wire = key >> 3, key & 0x7

	if num == fieldNull {
		if wire != wireVarint {
			return stream.Field{}, 0, fmt.Errorf("invalid wire type %d of null field", wire)
		}
		var x, m = proto.DecodeVarint(b[n:])
		if m == 0 {
			return stream.Field{}, 0, errMalformedVarint
		}
		switch stream.Kind(x) {
		case stream.KindString:
			return stream.Field{Kind: stream.KindString}, n + m, nil
		case stream.KindBytes:
			return stream.Field{Kind: stream.KindBytes, Value: []byte(nil)}, n + m, nil
		default:
			return stream.Field{}, 0, fmt.Errorf("invalid null field kind %d", x)
		}
	} else if num == 0 || num > uint64(stream.KindBytes) {
		return stream.Field{}, 0, fmt.Errorf("invalid field number %d", num)
	}

	var kind = stream.Kind(num)
	if wire != wireType(kind) {
		return stream.Field{}, 0, fmt.Errorf("invalid wire type %d of %s field", wire, kind)
	}
	var rest = b[n:]

	switch wire {
	case wireFixed32:
		if len(rest) < 4 {
			return stream.Field{}, 0, io.ErrUnexpectedEOF
		}
		var v = math.Float32frombits(binary.LittleEndian.Uint32(rest))
		return stream.Field{Kind: kind, Value: v}, n + 4, nil

	case wireFixed64:
		if len(rest) < 8 {
			return stream.Field{}, 0, io.ErrUnexpectedEOF
		}
		var v = math.Float64frombits(binary.LittleEndian.Uint64(rest))
		return stream.Field{Kind: kind, Value: v}, n + 8, nil

	case wireBytes:
		var l, m = proto.DecodeVarint(rest)
		if m == 0 {
			return stream.Field{}, 0, errMalformedVarint
		} else if l > uint64(len(rest)-m) {
			return stream.Field{}, 0, io.ErrUnexpectedEOF
		}
		var content = rest[m : m+int(l)]

		if kind == stream.KindString {
			return stream.Field{Kind: kind, Value: string(content)}, n + m + int(l), nil
		}
		return stream.Field{Kind: kind, Value: append(make([]byte, 0, l), content...)}, n + m + int(l), nil
	}

	// wireVarint.
	var x, m = proto.DecodeVarint(rest)
	if m == 0 {
		return stream.Field{}, 0, errMalformedVarint
	}
	n += m

	switch kind {
	case stream.KindBoolean:
		if x > 1 {
			return stream.Field{}, 0, fmt.Errorf("invalid boolean value %d", x)
		}
		return stream.Field{Kind: kind, Value: x == 1}, n, nil
	case stream.KindChar:
		if x > math.MaxUint16 {
			return stream.Field{}, 0, fmt.Errorf("char value %d out of range", x)
		}
		return stream.Field{Kind: kind, Value: stream.Char(x)}, n, nil
	}

	var i = int64(x>>1) ^ -int64(x&1) // Zig-zag decode.

	switch kind {
	case stream.KindByte:
		if i < math.MinInt8 || i > math.MaxInt8 {
			return stream.Field{}, 0, fmt.Errorf("byte value %d out of range", i)
		}
		return stream.Field{Kind: kind, Value: int8(i)}, n, nil
	case stream.KindShort:
		if i < math.MinInt16 || i > math.MaxInt16 {
			return stream.Field{}, 0, fmt.Errorf("short value %d out of range", i)
		}
		return stream.Field{Kind: kind, Value: int16(i)}, n, nil
	case stream.KindInt:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return stream.Field{}, 0, fmt.Errorf("int value %d out of range", i)
		}
		return stream.Field{Kind: kind, Value: int32(i)}, n, nil
	default:
		return stream.Field{Kind: kind, Value: i}, n, nil
	}
}

func matchesMagicWord(b []byte) bool {
	return b[0] == magicWord[0] && b[1] == magicWord[1] && b[2] == magicWord[2] && b[3] == magicWord[3]
}

var (
	// ErrDesyncDetected is returned by Decode upon detection of an invalid body header.
	ErrDesyncDetected = errors.New("detected de-synchronization")
	// magicWord precedes all Fixed encodings.
	magicWord = [4]byte{0x53, 0x74, 0x93, 0x36}

	errMalformedVarint = errors.New("malformed varint")
)
