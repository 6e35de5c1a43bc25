package stream

import (
	"fmt"
	"strconv"
	"strings"
)

// ReadBoolean reads a Boolean, or a String parsed as a Boolean. String
// parsing is case-insensitive "true"; all other text, and null, is false.
func (m *Message) ReadBoolean() (bool, error) {
	return read(m, KindBoolean, func(f Field) (bool, error) {
		switch v := f.Value.(type) {
		case bool:
			return v, nil
		case string:
			return strings.EqualFold(v, "true"), nil
		}
		if f.Kind == KindString {
			return false, nil // Null String.
		}
		return false, mismatch(f, KindBoolean)
	})
}

// ReadInt8 reads a Byte, or a String parsed as a Byte.
func (m *Message) ReadInt8() (int8, error) {
	return read(m, KindByte, func(f Field) (int8, error) {
		if v, ok := f.Value.(int8); ok {
			return v, nil
		}
		var i, err = parseInt(f, KindByte, 8)
		return int8(i), err
	})
}

// ReadInt16 reads a Short, a Byte widened to a Short, or a String parsed as a Short.
func (m *Message) ReadInt16() (int16, error) {
	return read(m, KindShort, func(f Field) (int16, error) {
		switch v := f.Value.(type) {
		case int8:
			return int16(v), nil
		case int16:
			return v, nil
		}
		var i, err = parseInt(f, KindShort, 16)
		return int16(i), err
	})
}

// ReadChar reads a Char. No other Kind converts to a Char, and a null String
// is a NullValueError.
func (m *Message) ReadChar() (Char, error) {
	return read(m, KindChar, func(f Field) (Char, error) {
		if v, ok := f.Value.(Char); ok {
			return v, nil
		} else if f.Kind == KindString && f.Value == nil {
			return 0, newError(NullValueError, "cannot read null string as char")
		}
		return 0, mismatch(f, KindChar)
	})
}

// ReadInt32 reads an Int, a Byte or Short widened to an Int, or a String parsed as an Int.
func (m *Message) ReadInt32() (int32, error) {
	return read(m, KindInt, func(f Field) (int32, error) {
		switch v := f.Value.(type) {
		case int8:
			return int32(v), nil
		case int16:
			return int32(v), nil
		case int32:
			return v, nil
		}
		var i, err = parseInt(f, KindInt, 32)
		return int32(i), err
	})
}

// ReadInt64 reads a Long, a Byte, Short or Int widened to a Long, or a String
// parsed as a Long.
func (m *Message) ReadInt64() (int64, error) {
	return read(m, KindLong, func(f Field) (int64, error) {
		switch v := f.Value.(type) {
		case int8:
			return int64(v), nil
		case int16:
			return int64(v), nil
		case int32:
			return int64(v), nil
		case int64:
			return v, nil
		}
		return parseInt(f, KindLong, 64)
	})
}

// ReadFloat32 reads a Float, or a String parsed as a Float.
func (m *Message) ReadFloat32() (float32, error) {
	return read(m, KindFloat, func(f Field) (float32, error) {
		if v, ok := f.Value.(float32); ok {
			return v, nil
		}
		var r, err = parseFloat(f, KindFloat, 32)
		return float32(r), err
	})
}

// ReadFloat64 reads a Double, a Float widened to a Double, or a String parsed as a Double.
func (m *Message) ReadFloat64() (float64, error) {
	return read(m, KindDouble, func(f Field) (float64, error) {
		switch v := f.Value.(type) {
		case float32:
			return float64(v), nil
		case float64:
			return v, nil
		}
		return parseFloat(f, KindDouble, 64)
	})
}

// ReadString reads any non-Bytes Field as its canonical text. A null String
// is returned as a nil pointer.
func (m *Message) ReadString() (*string, error) {
	return read(m, KindString, func(f Field) (*string, error) {
		if f.Kind == KindString && f.Value == nil {
			return nil, nil
		}
		var s = FormatValue(f)
		return &s, nil
	})
}

// ReadObject reads the next Field as its Go value (see Field). Null Strings
// and Bytes are returned as nil, and Bytes content is a copy. ReadObject of
// a partially read Bytes Field is a FormatError.
func (m *Message) ReadObject() (interface{}, error) {
	return read(m, KindInvalid, func(f Field) (interface{}, error) {
		if f.IsNull() {
			return nil, nil
		} else if b, ok := f.Value.([]byte); ok {
			return copyBytes(b), nil
		}
		return f.Value, nil
	})
}

// FormatValue returns the canonical text of a non-null Field. Floats use the
// shortest representation which parses back to the same value, and Bytes are
// hex-encoded (Bytes never convert to String on read).
func FormatValue(f Field) string {
	switch v := f.Value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case Char:
		return v.String()
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return v
	case []byte:
		return fmt.Sprintf("%x", v)
	default:
		return ""
	}
}

// read is the shared read path: it verifies the Message is readable, that no
// Bytes Field is partially consumed, and that a Field remains. The Field is
// passed to |conv|, and the cursor advances only if |conv| succeeds.
func read[T any](m *Message, want Kind, conv func(Field) (T, error)) (T, error) {
	var zero T

	if err := m.checkReadable(); err != nil {
		return zero, err
	} else if m.partial != nil {
		return zero, newError(FormatError, ReasonInterleavedRead)
	} else if m.cursor >= len(m.fields) {
		return zero, newError(EOF, ReasonEndOfStream)
	}

	var f = m.fields[m.cursor]
	if f.Kind == KindBytes && want != KindInvalid {
		return zero, mismatch(f, want)
	}
	var v, err = conv(f)
	if err != nil {
		return zero, err
	}
	m.cursor++
	m.drained = false
	return v, nil
}

func mismatch(f Field, want Kind) error {
	return newError(FormatError, "cannot read %s field as %s", f.Kind, want)
}

// parseInt parses a String Field as a signed integer of |bits|.
func parseInt(f Field, want Kind, bits int) (int64, error) {
	if f.Kind != KindString {
		return 0, mismatch(f, want)
	}
	var s, ok = f.Value.(string)
	if !ok {
		return 0, newError(FormatError, "cannot parse null string as %s", want)
	}
	var i, err = strconv.ParseInt(s, 10, bits)
	if err != nil {
		return 0, &Error{Code: FormatError, Reason: fmt.Sprintf("cannot parse %q as %s", s, want), Err: err}
	}
	return i, nil
}

// parseFloat parses a String Field as a float of |bits|.
func parseFloat(f Field, want Kind, bits int) (float64, error) {
	if f.Kind != KindString {
		return 0, mismatch(f, want)
	}
	var s, ok = f.Value.(string)
	if !ok {
		return 0, newError(FormatError, "cannot parse null string as %s", want)
	}
	return ParseFloat(s, bits)
}

// ParseFloat parses |s| as a float of |bits| (32 or 64), using the rule by
// which Strings are read as Floats and Doubles. Surrounding whitespace is
// ignored. Text beyond the range of |bits| parses as a signed infinity.
// Errors are FormatErrors.
func ParseFloat(s string, bits int) (float64, error) {
	var r, err = strconv.ParseFloat(strings.TrimSpace(s), bits)
	if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
		return r, nil // ±Inf.
	} else if err != nil {
		var want = KindDouble
		if bits == 32 {
			want = KindFloat
		}
		return 0, &Error{Code: FormatError, Reason: fmt.Sprintf("cannot parse %q as %s", s, want), Err: err}
	}
	return r, nil
}
