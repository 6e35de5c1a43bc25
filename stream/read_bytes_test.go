package stream

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkedByteReads(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("0123456789")))
	m.Reset()

	var buf = make([]byte, 4)
	var counts []int

	for i := 0; i != 4; i++ {
		var n, err = m.ReadBytes(buf)
		require.NoError(t, err)
		counts = append(counts, n)
	}
	assert.Equal(t, []int{4, 4, 2, -1}, counts)

	// The stream is now exhausted.
	var _, err = m.ReadBytes(buf)
	assert.True(t, errors.Is(err, ErrEOF))
}

func TestChunkedReadContent(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("abcdefg")))
	m.Reset()

	var out []byte
	var buf = make([]byte, 3)

	for {
		var n, err = m.ReadBytes(buf)
		require.NoError(t, err)
		if n == -1 {
			break
		}
		out = append(out, buf[:n]...)
		assert.Equal(t, 7-len(out), m.BytesRemaining())
	}
	assert.Equal(t, []byte("abcdefg"), out)
}

func TestNullAndEmptyByteFields(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes(nil))
	require.NoError(t, m.WriteBytes([]byte{}))
	require.NoError(t, m.WriteBytesRange(nil, 0, 0))
	require.NoError(t, m.WriteInt32(5))
	m.Reset()

	var buf = make([]byte, 4)

	var n, err = m.ReadBytes(buf) // Null.
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	n, err = m.ReadBytes(buf) // Empty.
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = m.ReadBytes(buf) // Null.
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	// Each was consumed by its single call.
	v, err := m.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(5), v)

	// ReadObject returns nil and an empty slice, respectively.
	m.Reset()
	obj, err := m.ReadObject()
	require.NoError(t, err)
	assert.Nil(t, obj)

	obj, err = m.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, []byte{}, obj)
}

func TestExactBufferDrainReportsEndOnNextCall(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("abcd")))
	require.NoError(t, m.WriteBytes([]byte("ef")))
	m.Reset()

	var buf = make([]byte, 4)

	var n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	// Consecutive byte writes are distinct fields.
	n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("ef"), buf[:n])
}

func TestReadAfterDrainMovesToNextField(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("ab")))
	require.NoError(t, m.WriteString("next"))
	m.Reset()

	var n, err = m.ReadBytes(make([]byte, 8))
	require.NoError(t, err)
	assert.Equal(t, 2, n) // Less than len(buf): the caller may move on.

	s, err := m.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "next", *s)
}

func TestInterleavedReadGuard(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("0123456789")))
	require.NoError(t, m.WriteInt32(9))
	m.Reset()

	var buf = make([]byte, 4)
	var n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	for _, k := range Kinds() {
		if k == KindBytes {
			continue
		}
		_, err = readAs(m, k)
		assert.True(t, errors.Is(err, &Error{Code: FormatError, Reason: ReasonInterleavedRead}), "%s: %v", k, err)
	}
	_, err = m.ReadObject()
	assert.True(t, errors.Is(err, &Error{Code: FormatError, Reason: ReasonInterleavedRead}))

	// The partial read continues where it left off.
	n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("4567"), buf)

	n, err = m.ReadBytes(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err := m.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(9), v)
}

func TestReadBytesOfNonByteField(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteString("abc"))
	m.Reset()

	var _, err = m.ReadBytes(make([]byte, 4))
	assert.True(t, errors.Is(err, &Error{Code: FormatError, Reason: ReasonExpectedBytes}))

	// Bytes never convert to or from String.
	s, err := m.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "abc", *s)
}

func TestZeroLengthBufferDoesNotStartRead(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBytes([]byte("abc")))
	m.Reset()

	var n, err = m.ReadBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, m.BytesRemaining())

	// No read is in progress, so ReadObject is permitted.
	obj, err := m.ReadObject()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), obj)
}

func TestConcreteScenario(t *testing.T) {
	var m = New()
	require.NoError(t, m.WriteBoolean(true))
	require.NoError(t, m.WriteString("42"))
	require.NoError(t, m.WriteBytes([]byte{0x01, 0x02, 0x03}))
	m.Reset()

	var b, err = m.ReadBoolean()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := m.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(42), i)

	var buf = make([]byte, 2)
	var counts []int
	for j := 0; j != 3; j++ {
		var n, err = m.ReadBytes(buf)
		require.NoError(t, err)
		counts = append(counts, n)
	}
	assert.Equal(t, []int{2, 1, -1}, counts)
}
