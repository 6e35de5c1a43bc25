package stream

import (
	"fmt"
	"unicode/utf16"
)

// Char is a 16-bit Unicode code unit.
type Char uint16

// String returns the Char as a one-rune string. Lone surrogates map to U+FFFD.
func (c Char) String() string { return string(utf16.Decode([]uint16{uint16(c)})) }

// Field is a tagged value of a Message. Value holds exactly the Go type
// mapped to Kind:
//
//	KindBoolean  bool
//	KindByte     int8
//	KindShort    int16
//	KindChar     Char
//	KindInt      int32
//	KindLong     int64
//	KindFloat    float32
//	KindDouble   float64
//	KindString   string, or nil for a null String
//	KindBytes    []byte, where a nil slice is a null Bytes
type Field struct {
	Kind  Kind
	Value interface{}
}

// IsNull returns true if the Field is a null String or null Bytes.
func (f Field) IsNull() bool {
	switch f.Kind {
	case KindString:
		return f.Value == nil
	case KindBytes:
		var b, _ = f.Value.([]byte)
		return b == nil
	default:
		return false
	}
}

// Validate returns a FormatError if Value does not hold the type of Kind.
func (f Field) Validate() error {
	var ok bool

	switch f.Kind {
	case KindBoolean:
		_, ok = f.Value.(bool)
	case KindByte:
		_, ok = f.Value.(int8)
	case KindShort:
		_, ok = f.Value.(int16)
	case KindChar:
		_, ok = f.Value.(Char)
	case KindInt:
		_, ok = f.Value.(int32)
	case KindLong:
		_, ok = f.Value.(int64)
	case KindFloat:
		_, ok = f.Value.(float32)
	case KindDouble:
		_, ok = f.Value.(float64)
	case KindString:
		if f.Value == nil {
			ok = true
		} else {
			_, ok = f.Value.(string)
		}
	case KindBytes:
		if f.Value == nil {
			ok = true
		} else {
			_, ok = f.Value.([]byte)
		}
	default:
		return newError(FormatError, "invalid field kind %s", f.Kind)
	}

	if !ok {
		return newError(FormatError, "%s field holds a %T value", f.Kind, f.Value)
	}
	return nil
}

// Size is the number of body bytes the Field accounts for: a one-byte tag,
// plus fixed-width scalar content or a four-byte length and variable content.
// Null Strings and Bytes are the tag alone.
func (f Field) Size() int {
	switch f.Kind {
	case KindBoolean, KindByte:
		return 2
	case KindShort, KindChar:
		return 3
	case KindInt, KindFloat:
		return 5
	case KindLong, KindDouble:
		return 9
	case KindString:
		if s, ok := f.Value.(string); ok {
			return 5 + len(s)
		}
		return 1
	case KindBytes:
		if b, _ := f.Value.([]byte); b != nil {
			return 5 + len(b)
		}
		return 1
	default:
		return 0
	}
}

// String returns a debugging representation of the Field, eg "int(42)".
func (f Field) String() string {
	if f.IsNull() {
		return f.Kind.String() + "(null)"
	}
	switch v := f.Value.(type) {
	case string:
		return fmt.Sprintf("%s(%q)", f.Kind, v)
	case []byte:
		return fmt.Sprintf("%s(%x)", f.Kind, v)
	case Char:
		return fmt.Sprintf("%s(%q)", f.Kind, v.String())
	default:
		return fmt.Sprintf("%s(%v)", f.Kind, v)
	}
}

// clone returns a Field with Bytes content copied.
func (f Field) clone() Field {
	if b, ok := f.Value.([]byte); ok && b != nil {
		f.Value = append(make([]byte, 0, len(b)), b...)
	}
	return f
}
