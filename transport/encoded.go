package transport

import (
	"context"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.gazette.dev/streammsg/codec"
	"go.gazette.dev/streammsg/stream"
)

// Encoded is a Transport which delivers a Message by encoding and compressing
// its body, and then decompressing and decoding the body into a new Message.
// A delivered Message has the Options of the sent one.
type Encoded struct {
	Codec       codec.Codec
	Compression codec.Compression
}

// Name of the Encoded Transport, eg "application/x-stream-fixed+gzip".
func (e *Encoded) Name() string {
	if e.Compression == codec.CompressionNone {
		return e.Codec.ContentType()
	}
	return e.Codec.ContentType() + "+" + e.Compression.ContentEncoding()
}

// Deliver implements Transport.
func (e *Encoded) Deliver(ctx context.Context, msg *stream.Message) (*stream.Message, error) {
	var id = uuid.New()

	if err := ctx.Err(); err != nil {
		return nil, failed(e, err)
	}
	var b, err = EncodeBody(e.Codec, e.Compression, msg)
	if err != nil {
		log.WithFields(log.Fields{"id": id, "transport": e.Name(), "err": err}).Warn("failed to encode delivery")
		return nil, failed(e, err)
	}

	// Check again, as encoding a large body may be slow.
	if err = ctx.Err(); err != nil {
		return nil, failed(e, err)
	}
	out, err := DecodeBody(e.Codec, e.Compression, b, msg.Options())
	if err != nil {
		log.WithFields(log.Fields{"id": id, "transport": e.Name(), "err": err}).Warn("failed to decode delivery")
		return nil, failed(e, err)
	}

	log.WithFields(log.Fields{
		"id":        id,
		"transport": e.Name(),
		"fields":    out.Len(),
		"bytes":     len(b),
	}).Debug("delivered message")

	delivered(e, out, len(b))
	return out, nil
}
