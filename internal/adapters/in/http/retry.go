package http

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"medshop/internal/pkg/errs"
	"medshop/internal/pkg/metrics"

	"github.com/cenkalti/backoff/v4"
)

type retrier struct {
	attempts uint64
	metrics  *metrics.Metrics
	logger   *slog.Logger

	// initialInterval overrides the first wait; tests set it to keep runs short.
	initialInterval time.Duration
}

// do runs op and repeats it while it fails with a transient store error, up
// to r.attempts more times or until ctx is done. Other errors return at once,
// and so does a commit with an unknown outcome.
func (r retrier) do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	if r.initialInterval > 0 {
		b.InitialInterval = r.initialInterval
	}
	b.MaxInterval = time.Second

	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.attempts), ctx)
	return backoff.RetryNotify(func() error {
		err := op()
		if err != nil && (!errors.Is(err, errs.ErrTransientStore) || errors.Is(err, errs.ErrCommitUnconfirmed)) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		r.metrics.StoreRetries.Inc()
		r.logger.WarnContext(ctx, "Retrying after transient store error", "error", err, "wait", wait)
	})
}

// call runs a use case handler under r and returns its result.
func call[T any](ctx context.Context, r retrier, handle func(context.Context) (T, error)) (T, error) {
	var out T
	err := r.do(ctx, func() error {
		var err error
		out, err = handle(ctx)
		return err
	})
	return out, err
}
