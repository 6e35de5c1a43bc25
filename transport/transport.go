// Package transport delivers stream Messages from a producer to a consumer.
// A delivered Message is an independent copy of the sent one, in ReadOnly
// mode and positioned at its first Field.
package transport

import (
	"context"

	"github.com/pkg/errors"
	"go.gazette.dev/streammsg/codec"
	"go.gazette.dev/streammsg/metrics"
	"go.gazette.dev/streammsg/stream"
)

// Transport delivers Messages.
type Transport interface {
	// Name of the Transport, used as a metrics label.
	Name() string
	// Deliver a copy of |msg| which is ready for reading. |msg| itself is
	// not modified, and may be in either Mode.
	Deliver(ctx context.Context, msg *stream.Message) (*stream.Message, error)
}

// Config configures a Transport.
type Config struct {
	Codec       string            `long:"codec" env:"CODEC" default:"fixed" choice:"fixed" choice:"json" choice:"loopback" description:"Body codec used to deliver messages, or loopback to deliver in-memory copies"`
	Compression codec.Compression `long:"compression" env:"COMPRESSION" default:"NONE" description:"Compression of encoded bodies (NONE, GZIP, SNAPPY, or ZSTANDARD)"`
}

// New returns the Transport of the Config.
func New(cfg Config) (Transport, error) {
	if cfg.Codec == "loopback" {
		return Loopback{}, nil
	}
	var c, err = codec.ByName(cfg.Codec)
	if err != nil {
		return nil, err
	}
	if cfg.Compression == codec.CompressionInvalid {
		cfg.Compression = codec.CompressionNone
	} else if err = cfg.Compression.Validate(); err != nil {
		return nil, err
	}
	return &Encoded{Codec: c, Compression: cfg.Compression}, nil
}

// Loopback is a Transport which delivers in-memory deep copies.
type Loopback struct{}

// Name returns "loopback".
func (Loopback) Name() string { return "loopback" }

// Deliver implements Transport.
func (l Loopback) Deliver(ctx context.Context, msg *stream.Message) (*stream.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, failed(l, err)
	}
	var out = msg.Clone()
	out.Reset()

	delivered(l, out, 0)
	return out, nil
}

// EncodeBody encodes the Fields of |msg| with Codec |c|, and compresses the
// result with Compression |comp|. Failures are ProviderFailures.
func EncodeBody(c codec.Codec, comp codec.Compression, msg *stream.Message) ([]byte, error) {
	var b, err = codec.EncodeMessage(c, msg)
	if err != nil {
		return nil, stream.NewProviderFailure(err, "failed to encode message body")
	}
	metrics.EncodedBodyBytes.Observe(float64(len(b)))

	if b, err = codec.Compress(b, comp); err != nil {
		return nil, stream.NewProviderFailure(err, "failed to compress message body")
	}
	return b, nil
}

// DecodeBody decompresses |b| with Compression |comp| and decodes it with
// Codec |c| into a ReadOnly Message having Options |opts|. Failures are
// ProviderFailures.
func DecodeBody(c codec.Codec, comp codec.Compression, b []byte, opts stream.Options) (*stream.Message, error) {
	var err error
	if b, err = codec.Decompress(b, comp); err != nil {
		return nil, stream.NewProviderFailure(err, "failed to decompress message body")
	}
	var msg *stream.Message
	if msg, err = codec.DecodeMessage(c, b, opts); err != nil {
		return nil, stream.NewProviderFailure(err, "failed to decode message body")
	}
	msg.Reset()
	return msg, nil
}

func delivered(t Transport, msg *stream.Message, bodyBytes int) {
	metrics.DeliveriesTotal.WithLabelValues(t.Name(), metrics.Ok).Inc()
	metrics.DeliveredBytesTotal.WithLabelValues(t.Name()).Add(float64(bodyBytes))

	for _, f := range msg.Fields() {
		metrics.DeliveredFieldsTotal.WithLabelValues(f.Kind.String()).Inc()
	}
}

func failed(t Transport, err error) error {
	metrics.DeliveriesTotal.WithLabelValues(t.Name(), metrics.Fail).Inc()
	return stream.NewProviderFailure(errors.WithMessage(err, t.Name()), "delivery failed")
}
