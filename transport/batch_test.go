package transport

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.gazette.dev/streammsg/codec"
	"go.gazette.dev/streammsg/stream"
)

func TestDeliverAllPreservesOrder(t *testing.T) {
	var msgs []*stream.Message
	for i := 0; i != 20; i++ {
		var msg = stream.New()
		require.NoError(t, msg.WriteInt32(int32(i)))
		require.NoError(t, msg.WriteString(fmt.Sprintf("message %d", i)))
		msgs = append(msgs, msg)
	}
	var tr = &Encoded{Codec: codec.JSON, Compression: codec.CompressionSnappy}

	for _, parallelism := range []int{0, 1, 4} {
		var out, err = DeliverAll(context.Background(), tr, msgs, parallelism)
		require.NoError(t, err)
		require.Len(t, out, len(msgs))

		for i, m := range out {
			assert.Equal(t, stream.ReadOnly, m.Mode())
			assert.Equal(t, msgs[i].Fields(), m.Fields())
		}
	}
}

func TestDeliverAllFailure(t *testing.T) {
	var msgs = []*stream.Message{stream.New(), stream.New(), stream.New()}
	var tr = &failingTransport{failOn: 2}

	var out, err = DeliverAll(context.Background(), tr, msgs, 1)
	assert.Nil(t, out)
	assert.EqualError(t, err, "delivering message 1: stream: provider failure: injected")
	assert.True(t, errors.Is(err, stream.ErrProviderFailure))
}

func TestDeliverAllOfNothing(t *testing.T) {
	var out, err = DeliverAll(context.Background(), Loopback{}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// failingTransport fails its |failOn|'th delivery.
type failingTransport struct {
	n      int32
	failOn int32
}

func (*failingTransport) Name() string { return "failing" }

func (f *failingTransport) Deliver(ctx context.Context, msg *stream.Message) (*stream.Message, error) {
	if atomic.AddInt32(&f.n, 1) == f.failOn {
		return nil, &stream.Error{Code: stream.ProviderFailure, Reason: "injected"}
	}
	return Loopback{}.Deliver(ctx, msg)
}
