package stream

// ReadBytes reads the Bytes Field at the cursor into |buf|, returning the
// number of bytes copied. A Bytes Field may be read across many calls, and
// until it's fully consumed every other read of the Message fails with a
// FormatError.
//
// A call which drains the Field returns the count it copied and advances to
// the next Field. The call after that returns -1, marking the end of the
// drained Field. Callers therefore loop until ReadBytes returns less than
// len(|buf|), or -1. A null Bytes Field returns -1 and an empty one returns 0,
// and either is consumed by that single call.
func (m *Message) ReadBytes(buf []byte) (int, error) {
	if err := m.checkReadable(); err != nil {
		return 0, err
	} else if m.drained {
		m.drained = false
		return -1, nil
	}

	var offset int
	if m.partial != nil {
		offset = m.partial.offset
	} else if m.cursor >= len(m.fields) {
		return 0, newError(EOF, ReasonEndOfStream)
	} else if m.fields[m.cursor].Kind != KindBytes {
		return 0, newError(FormatError, ReasonExpectedBytes)
	}

	var b = m.fields[m.cursor].Value.([]byte)

	if b == nil {
		m.cursor++
		return -1, nil
	} else if len(b) == 0 {
		m.cursor++
		return 0, nil
	}

	var n = copy(buf, b[offset:])

	if offset+n == len(b) {
		m.cursor++
		m.partial = nil
		m.drained = true
	} else if n != 0 {
		m.partial = &byteRead{index: m.cursor, offset: offset + n}
	}
	return n, nil
}

// BytesRemaining returns the number of unread bytes of a partially read
// Bytes Field, or zero if no Bytes Field is partially read.
func (m *Message) BytesRemaining() int {
	if m.partial == nil {
		return 0
	}
	return len(m.fields[m.partial.index].Value.([]byte)) - m.partial.offset
}
