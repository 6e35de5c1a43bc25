package stream

import "fmt"

// WriteBoolean appends a Boolean Field.
func (m *Message) WriteBoolean(v bool) error { return m.append(Field{Kind: KindBoolean, Value: v}) }

// WriteInt8 appends a Byte Field.
func (m *Message) WriteInt8(v int8) error { return m.append(Field{Kind: KindByte, Value: v}) }

// WriteInt16 appends a Short Field.
func (m *Message) WriteInt16(v int16) error { return m.append(Field{Kind: KindShort, Value: v}) }

// WriteChar appends a Char Field.
func (m *Message) WriteChar(v Char) error { return m.append(Field{Kind: KindChar, Value: v}) }

// WriteInt32 appends an Int Field.
func (m *Message) WriteInt32(v int32) error { return m.append(Field{Kind: KindInt, Value: v}) }

// WriteInt64 appends a Long Field.
func (m *Message) WriteInt64(v int64) error { return m.append(Field{Kind: KindLong, Value: v}) }

// WriteFloat32 appends a Float Field.
func (m *Message) WriteFloat32(v float32) error { return m.append(Field{Kind: KindFloat, Value: v}) }

// WriteFloat64 appends a Double Field.
func (m *Message) WriteFloat64(v float64) error { return m.append(Field{Kind: KindDouble, Value: v}) }

// WriteString appends a String Field. Use WriteObject(nil) for a null String.
func (m *Message) WriteString(v string) error { return m.append(Field{Kind: KindString, Value: v}) }

// WriteBytes appends a Bytes Field holding a copy of |b|. A nil |b| appends
// a null Bytes Field, and a non-nil empty |b| appends an empty one.
func (m *Message) WriteBytes(b []byte) error {
	return m.append(Field{Kind: KindBytes, Value: copyBytes(b)})
}

// WriteBytesRange appends a Bytes Field holding a copy of |b|[offset:offset+length].
// A nil |b| appends a null Bytes Field. A range outside of |b| is a FormatError.
func (m *Message) WriteBytesRange(b []byte, offset, length int) error {
	if b == nil {
		return m.append(Field{Kind: KindBytes, Value: []byte(nil)})
	} else if offset < 0 || length < 0 || offset > len(b) || length > len(b)-offset {
		if err := m.checkWriteable(); err != nil {
			return err
		}
		return newError(FormatError, "invalid byte range [%d:%d+%d] of %d bytes", offset, offset, length, len(b))
	}
	return m.WriteBytes(b[offset : offset+length])
}

// WriteObject appends a Field of the Kind mapped to the dynamic type of |v|,
// which must be one of bool, int8, int16, Char, int32, int64, float32,
// float64, string, or []byte. A nil |v| appends a null String. Any other
// type is a FormatError.
func (m *Message) WriteObject(v interface{}) error {
	switch vv := v.(type) {
	case nil:
		return m.append(Field{Kind: KindString})
	case bool:
		return m.WriteBoolean(vv)
	case int8:
		return m.WriteInt8(vv)
	case int16:
		return m.WriteInt16(vv)
	case Char:
		return m.WriteChar(vv)
	case int32:
		return m.WriteInt32(vv)
	case int64:
		return m.WriteInt64(vv)
	case float32:
		return m.WriteFloat32(vv)
	case float64:
		return m.WriteFloat64(vv)
	case string:
		return m.WriteString(vv)
	case []byte:
		return m.WriteBytes(vv)
	default:
		if err := m.checkWriteable(); err != nil {
			return err
		}
		return &Error{Code: FormatError, Reason: ReasonInvalidObjectType, Err: fmt.Errorf("unsupported type %T", v)}
	}
}

// WriteField appends a copy of Field |f|, which must Validate.
func (m *Message) WriteField(f Field) error {
	if err := m.checkWriteable(); err != nil {
		return err
	} else if err = f.Validate(); err != nil {
		return err
	}
	if f.Kind == KindBytes && f.Value == nil {
		f.Value = []byte(nil)
	}
	return m.append(f.clone())
}

// append |f| to the Message, which takes ownership of any Bytes content.
func (m *Message) append(f Field) error {
	if err := m.checkWriteable(); err != nil {
		return err
	}
	var size = f.Size()

	if m.opts.MaxBodySize != 0 && m.size+size > m.opts.MaxBodySize {
		return &Error{
			Code:       ProviderFailure,
			Reason:     ReasonBodyTooLarge,
			VendorCode: "max-body-size",
		}
	}
	m.fields = append(m.fields, f)
	m.size += size
	return nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
