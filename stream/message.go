package stream

// Mode of a Message body.
type Mode uint8

const (
	// WriteOnly is the initial Mode, and the Mode following ClearBody.
	WriteOnly Mode = iota
	// ReadOnly is the Mode following Reset.
	ReadOnly
)

func (m Mode) String() string {
	if m == ReadOnly {
		return "read-only"
	}
	return "write-only"
}

// Options of a Message.
type Options struct {
	// MaxBodySize, if non-zero, bounds the summed Size of the Message Fields.
	// A write which would exceed it fails with a ProviderFailure.
	MaxBodySize int
}

// Message is a typed sequential stream: an ordered sequence of tagged
// primitive Fields, filled while WriteOnly and consumed in order while
// ReadOnly. Message is not safe for concurrent use. It's owned by one party
// at a time (a producer writing it, a transport encoding it, or a consumer
// reading it), and callers sharing it must serialize access.
type Message struct {
	opts   Options
	mode   Mode
	fields []Field
	size   int // Summed Size of |fields|.

	// Index of the next Field to read. Meaningful only while ReadOnly.
	cursor int
	// Partial read of the Bytes Field at |cursor|, or nil.
	partial *byteRead
	// Set when ReadBytes fully drained a Bytes Field, and cleared by the
	// next read. A following ReadBytes reports the drain by returning -1.
	drained bool
}

// byteRead tracks a partially consumed Bytes Field.
type byteRead struct {
	index  int // Field index. Always equal to Message.cursor.
	offset int // Bytes of the Field already returned.
}

// New returns an empty WriteOnly Message without a body size limit.
func New() *Message { return NewMessage(Options{}) }

// NewMessage returns an empty WriteOnly Message with Options.
func NewMessage(opts Options) *Message { return &Message{opts: opts} }

// Mode returns the current Mode of the Message.
func (m *Message) Mode() Mode { return m.mode }

// Len returns the number of Fields of the Message.
func (m *Message) Len() int { return len(m.fields) }

// Size returns the summed Size of the Message Fields.
func (m *Message) Size() int { return m.size }

// Options returns the Options of the Message.
func (m *Message) Options() Options { return m.opts }

// Reset puts the Message into ReadOnly mode, positioned at the first Field.
// Reset of a ReadOnly Message rewinds it so it may be read again.
func (m *Message) Reset() {
	m.mode = ReadOnly
	m.rewind()
}

// ClearBody discards all Fields and returns the Message to WriteOnly mode.
func (m *Message) ClearBody() {
	m.mode = WriteOnly
	m.fields = nil
	m.size = 0
	m.rewind()
}

// Fields returns a deep copy of the Message Fields, in order. It may be
// called in either Mode, and doesn't affect read progress.
func (m *Message) Fields() []Field {
	var out = make([]Field, len(m.fields))
	for i := range m.fields {
		out[i] = m.fields[i].clone()
	}
	return out
}

// Clone returns a deep copy of the Message in the same Mode. A ReadOnly
// clone is positioned at its first Field.
func (m *Message) Clone() *Message {
	return &Message{
		opts:   m.opts,
		mode:   m.mode,
		fields: m.Fields(),
		size:   m.size,
	}
}

func (m *Message) rewind() {
	m.cursor = 0
	m.partial = nil
	m.drained = false
}

func (m *Message) checkWriteable() error {
	if m.mode != WriteOnly {
		return newError(NotWriteable, ReasonReadOnly)
	}
	return nil
}

func (m *Message) checkReadable() error {
	if m.mode != ReadOnly {
		return newError(NotReadable, ReasonWriteOnly)
	}
	return nil
}
