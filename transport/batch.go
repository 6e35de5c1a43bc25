package transport

import (
	"context"

	"github.com/pkg/errors"
	"go.gazette.dev/streammsg/stream"
	"golang.org/x/sync/errgroup"
)

// DeliverAll delivers each of |msgs| with Transport |t|, using at most
// |parallelism| concurrent deliveries (or unbounded, if zero). Delivered
// Messages are returned in the order of |msgs|. The first failed delivery
// cancels the remainder, and its error is returned.
//
// Each of |msgs| must be exclusively owned by DeliverAll until it returns.
func DeliverAll(ctx context.Context, t Transport, msgs []*stream.Message, parallelism int) ([]*stream.Message, error) {
	var out = make([]*stream.Message, len(msgs))
	var group, groupCtx = errgroup.WithContext(ctx)

	if parallelism > 0 {
		group.SetLimit(parallelism)
	}
	for i := range msgs {
		group.Go(func() error {
			var m, err = t.Deliver(groupCtx, msgs[i])
			if err != nil {
				return errors.WithMessagef(err, "delivering message %d", i)
			}
			out[i] = m
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
