package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteObjectDispatch(t *testing.T) {
	var m = New()
	var objects = []interface{}{
		true, int8(-1), int16(300), Char('z'), int32(70000), int64(1 << 50),
		float32(0.5), float64(0.25), "str", []byte("raw"), nil,
	}
	for _, o := range objects {
		require.NoError(t, m.WriteObject(o))
	}

	var kinds []Kind
	for _, f := range m.Fields() {
		kinds = append(kinds, f.Kind)
	}
	assert.Equal(t, []Kind{KindBoolean, KindByte, KindShort, KindChar, KindInt, KindLong,
		KindFloat, KindDouble, KindString, KindBytes, KindString}, kinds)

	m.Reset()
	for _, o := range objects {
		var out, err = m.ReadObject()
		require.NoError(t, err)
		assert.Equal(t, o, out)
	}
}

func TestWriteObjectRejectsOtherTypes(t *testing.T) {
	var m = New()
	var s = "pointer"

	for _, o := range []interface{}{
		int(1), uint8(1), uint16(1), uint64(1), &s, []int8{1}, map[string]int{}, struct{}{},
	} {
		var err = m.WriteObject(o)
		assert.True(t, errors.Is(err, &Error{Code: FormatError, Reason: ReasonInvalidObjectType}), "%T: %v", o, err)
	}
	assert.Equal(t, 0, m.Len())

	assert.EqualError(t, m.WriteObject(int(1)),
		"stream: format error: invalid object type for stream field: unsupported type int")
}

func TestWriteBytesCopiesInput(t *testing.T) {
	var m = New()
	var b = []byte("abcdef")

	require.NoError(t, m.WriteBytes(b))
	require.NoError(t, m.WriteBytesRange(b, 2, 3))
	require.NoError(t, m.WriteBytesRange(b, 6, 0))
	b[0], b[2] = 'X', 'Y'

	m.Reset()
	for _, want := range [][]byte{[]byte("abcdef"), []byte("cde"), {}} {
		var out, err = m.ReadObject()
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}
}

func TestWriteBytesRangeBounds(t *testing.T) {
	var m = New()
	var b = []byte("abc")

	for _, r := range [][2]int{{-1, 1}, {0, -1}, {4, 0}, {1, 3}, {3, 1}} {
		var err = m.WriteBytesRange(b, r[0], r[1])
		assert.True(t, errors.Is(err, ErrFormat), "%v: %v", r, err)
	}
	assert.Equal(t, 0, m.Len())
}

func TestWriteFieldValidation(t *testing.T) {
	var m = New()

	require.NoError(t, m.WriteField(Field{Kind: KindChar, Value: Char('q')}))
	require.NoError(t, m.WriteField(Field{Kind: KindString}))
	require.NoError(t, m.WriteField(Field{Kind: KindBytes}))
	require.NoError(t, m.WriteField(Field{Kind: KindBytes, Value: []byte("x")}))

	for _, f := range []Field{
		{Kind: KindInt, Value: int64(1)},
		{Kind: KindBoolean},
		{Kind: KindChar, Value: uint16(1)},
		{Kind: KindInvalid, Value: true},
		{Kind: Kind(42), Value: true},
		{Kind: KindString, Value: []byte("x")},
	} {
		var err = m.WriteField(f)
		assert.True(t, errors.Is(err, ErrFormat), "%v: %v", f, err)
	}
	assert.Equal(t, 4, m.Len())

	m.Reset()
	var buf = make([]byte, 1)
	for _, want := range []interface{}{Char('q'), nil, nil} {
		var out, err = m.ReadObject()
		require.NoError(t, err)
		assert.Equal(t, want, out)
	}
	var n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFieldStringAndSize(t *testing.T) {
	var cases = []struct {
		f    Field
		str  string
		size int
	}{
		{Field{Kind: KindBoolean, Value: true}, "boolean(true)", 2},
		{Field{Kind: KindShort, Value: int16(-2)}, "short(-2)", 3},
		{Field{Kind: KindChar, Value: Char('a')}, `char("a")`, 3},
		{Field{Kind: KindLong, Value: int64(9)}, "long(9)", 9},
		{Field{Kind: KindString, Value: "hi"}, `string("hi")`, 7},
		{Field{Kind: KindString}, "string(null)", 1},
		{Field{Kind: KindBytes, Value: []byte{0xca, 0xfe}}, "bytes(cafe)", 7},
		{Field{Kind: KindBytes, Value: []byte(nil)}, "bytes(null)", 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.str, tc.f.String())
		assert.Equal(t, tc.size, tc.f.Size())
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		var out, err = ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, out)
	}
	var k, err = ParseKind(" Double ")
	require.NoError(t, err)
	assert.Equal(t, KindDouble, k)

	_, err = ParseKind("invalid")
	assert.EqualError(t, err, `unknown field kind "invalid"`)
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
