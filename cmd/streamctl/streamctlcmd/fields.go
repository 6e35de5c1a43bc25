package streamctlcmd

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"unicode/utf16"

	"github.com/pkg/errors"
	"go.gazette.dev/streammsg/stream"
)

// fieldSpec is the YAML representation of a stream.Field. Value is null
// (or omitted) for null Strings and Bytes. Bytes are base64 encoded. A Char is a string
// of one UTF-16 code unit, or an integer code unit. Floats and Doubles may
// be numbers, or strings such as "NaN" and "-Inf".
type fieldSpec struct {
	Kind  string      `yaml:"kind" json:"kind"`
	Value interface{} `yaml:"value" json:"value"`
}

// toField maps the fieldSpec to a stream.Field.
func (spec fieldSpec) toField() (stream.Field, error) {
	var kind, err = stream.ParseKind(spec.Kind)
	if err != nil {
		return stream.Field{}, err
	}
	var f = stream.Field{Kind: kind}

	switch kind {
	case stream.KindBoolean:
		if v, ok := spec.Value.(bool); ok {
			f.Value = v
		} else {
			err = fmt.Errorf("expected a boolean value, not %#v", spec.Value)
		}
	case stream.KindByte:
		var i int64
		if i, err = specInt(spec.Value, 8); err == nil {
			f.Value = int8(i)
		}
	case stream.KindShort:
		var i int64
		if i, err = specInt(spec.Value, 16); err == nil {
			f.Value = int16(i)
		}
	case stream.KindInt:
		var i int64
		if i, err = specInt(spec.Value, 32); err == nil {
			f.Value = int32(i)
		}
	case stream.KindLong:
		f.Value, err = specInt(spec.Value, 64)
	case stream.KindChar:
		f.Value, err = specChar(spec.Value)
	case stream.KindFloat:
		var d float64
		if d, err = specFloat(spec.Value, 32); err == nil {
			f.Value = float32(d)
		}
	case stream.KindDouble:
		f.Value, err = specFloat(spec.Value, 64)
	case stream.KindString:
		switch v := spec.Value.(type) {
		case nil:
		case string:
			f.Value = v
		default:
			err = fmt.Errorf("expected a string value, not %#v", spec.Value)
		}
	case stream.KindBytes:
		switch v := spec.Value.(type) {
		case nil:
			f.Value = []byte(nil)
		case string:
			var b []byte
			if b, err = base64.StdEncoding.DecodeString(v); err == nil {
				f.Value = append([]byte{}, b...)
			}
		default:
			err = fmt.Errorf("expected a base64 string value, not %#v", spec.Value)
		}
	}
	if err != nil {
		return stream.Field{}, errors.WithMessagef(err, "%s field", kind)
	}
	return f, nil
}

// newFieldSpec maps a Field to its fieldSpec.
func newFieldSpec(f stream.Field) fieldSpec {
	var spec = fieldSpec{Kind: f.Kind.String()}
	if f.IsNull() {
		return spec
	}

	switch v := f.Value.(type) {
	case stream.Char:
		if utf16.IsSurrogate(rune(v)) {
			spec.Value = int(v) // Not representable as a string.
		} else {
			spec.Value = v.String()
		}
	case float32, float64:
		// Use the shortest text of the value, as a number where possible.
		var text = stream.FormatValue(f)
		if d, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(d) && !math.IsInf(d, 0) {
			spec.Value = d
		} else {
			spec.Value = text
		}
	case []byte:
		spec.Value = base64.StdEncoding.EncodeToString(v)
	default:
		spec.Value = v
	}
	return spec
}

func specInt(v interface{}, bits int) (int64, error) {
	var i int64

	switch vv := v.(type) {
	case int:
		i = int64(vv)
	case int64:
		i = vv
	case uint64:
		if vv > math.MaxInt64 {
			return 0, fmt.Errorf("value %d out of range", vv)
		}
		i = int64(vv)
	case string:
		return strconv.ParseInt(vv, 10, bits)
	default:
		return 0, fmt.Errorf("expected an integer value, not %#v", v)
	}

	var lim = int64(1) << (bits - 1)
	if bits != 64 && (i < -lim || i >= lim) {
		return 0, fmt.Errorf("value %d out of range", i)
	}
	return i, nil
}

func specChar(v interface{}) (stream.Char, error) {
	switch vv := v.(type) {
	case string:
		var units = utf16.Encode([]rune(vv))
		if len(units) != 1 {
			return 0, fmt.Errorf("expected a single UTF-16 code unit, not %q", vv)
		}
		return stream.Char(units[0]), nil
	case int:
		if vv < 0 || vv > math.MaxUint16 {
			return 0, fmt.Errorf("code unit %d out of range", vv)
		}
		return stream.Char(vv), nil
	default:
		return 0, fmt.Errorf("expected a character value, not %#v", v)
	}
}

func specFloat(v interface{}, bits int) (float64, error) {
	switch vv := v.(type) {
	case float64:
		if bits == 32 && !math.IsInf(vv, 0) && math.Abs(vv) > math.MaxFloat32 {
			return 0, fmt.Errorf("value %g out of range", vv)
		}
		return vv, nil
	case int:
		return float64(vv), nil
	case string:
		return strconv.ParseFloat(vv, bits)
	default:
		return 0, fmt.Errorf("expected a floating-point value, not %#v", v)
	}
}

// buildMessage writes the Fields of |specs| to WriteOnly Message |msg|.
func buildMessage(msg *stream.Message, specs []fieldSpec) error {
	for i, spec := range specs {
		var f, err = spec.toField()
		if err != nil {
			return errors.WithMessagef(err, "field %d", i)
		} else if err = msg.WriteField(f); err != nil {
			return errors.WithMessagef(err, "field %d", i)
		}
	}
	return nil
}
