package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"go.gazette.dev/streammsg/labels"
	"go.gazette.dev/streammsg/stream"
)

// JSON is a Codec which encodes bodies as a single newline-terminated line
// of JSON: an array of {"kind": ..., "value": ...} objects, in Field order.
// Booleans are JSON booleans. Integers and Chars (as their code unit) are
// JSON numbers. Floats and Doubles are JSON strings of their canonical text,
// so that NaN and infinities round-trip. Strings are JSON strings, Bytes are
// base64 JSON strings, and null Strings and Bytes are JSON null.
var JSON = new(jsonCodec)
var _ Codec = JSON // JSON is-a Codec.

type jsonCodec struct{}

type jsonField struct {
	Kind  string          `json:"kind"`
	Value json.RawMessage `json:"value"`
}

// ContentType returns labels.ContentType_StreamJSON.
func (*jsonCodec) ContentType() string { return labels.ContentType_StreamJSON }

// Encode implements Codec.
func (*jsonCodec) Encode(fields []stream.Field, b []byte) ([]byte, error) {
	var out = make([]jsonField, len(fields))

	for i, f := range fields {
		if err := f.Validate(); err != nil {
			return nil, errors.WithMessagef(err, "encoding field %d", i)
		}
		var v interface{}

		switch vv := f.Value.(type) {
		case float32, float64:
			v = stream.FormatValue(f)
		case stream.Char:
			v = uint16(vv)
		case []byte:
			if vv != nil {
				v = vv
			}
		default:
			v = vv
		}

		var raw, err = json.Marshal(v)
		if err != nil {
			return nil, errors.WithMessagef(err, "encoding field %d", i)
		}
		out[i] = jsonField{Kind: f.Kind.String(), Value: raw}
	}

	var line, err = json.Marshal(out)
	if err != nil {
		return nil, err
	}
	b = append(b, line...)
	return append(b, '\n'), nil
}

// Decode implements Codec.
func (*jsonCodec) Decode(b []byte) ([]stream.Field, error) {
	var in []jsonField
	var dec = json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&in); err != nil {
		return nil, errors.Wrap(err, "decoding JSON body")
	} else if dec.More() {
		return nil, fmt.Errorf("JSON body has trailing content")
	}

	var fields = make([]stream.Field, len(in))
	for i, jf := range in {
		var f, err = decodeJSONField(jf)
		if err != nil {
			return nil, errors.WithMessagef(err, "decoding field %d", i)
		}
		fields[i] = f
	}
	return fields, nil
}

func decodeJSONField(jf jsonField) (stream.Field, error) {
	var kind, err = stream.ParseKind(jf.Kind)
	if err != nil {
		return stream.Field{}, err
	}
	var isNull = len(jf.Value) == 0 || string(jf.Value) == "null"

	switch kind {
	case stream.KindString:
		if isNull {
			return stream.Field{Kind: kind}, nil
		}
		var s string
		err = json.Unmarshal(jf.Value, &s)
		return stream.Field{Kind: kind, Value: s}, err

	case stream.KindBytes:
		if isNull {
			return stream.Field{Kind: kind, Value: []byte(nil)}, nil
		}
		var b []byte
		if err = json.Unmarshal(jf.Value, &b); err == nil && b == nil {
			b = []byte{}
		}
		return stream.Field{Kind: kind, Value: b}, err

	case stream.KindBoolean:
		var v bool
		err = json.Unmarshal(jf.Value, &v)
		return stream.Field{Kind: kind, Value: v}, err

	case stream.KindFloat, stream.KindDouble:
		var s string
		if err = json.Unmarshal(jf.Value, &s); err != nil {
			return stream.Field{}, err
		}
		var bits = 64
		if kind == stream.KindFloat {
			bits = 32
		}
		var v float64
		if v, err = stream.ParseFloat(s, bits); err != nil {
			return stream.Field{}, err
		} else if kind == stream.KindFloat {
			return stream.Field{Kind: kind, Value: float32(v)}, nil
		}
		return stream.Field{Kind: kind, Value: v}, nil
	}

	// Integer Kinds, and Char.
	var n json.Number
	if err = json.Unmarshal(jf.Value, &n); err != nil {
		return stream.Field{}, err
	}

	switch kind {
	case stream.KindChar:
		var u, err = strconv.ParseUint(n.String(), 10, 16)
		return stream.Field{Kind: kind, Value: stream.Char(u)}, err
	case stream.KindByte:
		var i, err = strconv.ParseInt(n.String(), 10, 8)
		return stream.Field{Kind: kind, Value: int8(i)}, err
	case stream.KindShort:
		var i, err = strconv.ParseInt(n.String(), 10, 16)
		return stream.Field{Kind: kind, Value: int16(i)}, err
	case stream.KindInt:
		var i, err = strconv.ParseInt(n.String(), 10, 32)
		return stream.Field{Kind: kind, Value: int32(i)}, err
	default:
		var i, err = strconv.ParseInt(n.String(), 10, 64)
		return stream.Field{Kind: kind, Value: i}, err
	}
}
