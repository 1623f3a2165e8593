package llm

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryingProvider wraps an LLMProvider with a bounded retry budget and a per-attempt timeout.
type RetryingProvider struct {
	next       LLMProvider
	maxRetries int
	timeout    time.Duration
	newBackOff func() backoff.BackOff
}

var _ LLMProvider = &RetryingProvider{}

// WithRetry decorates p so each call is attempted at most maxRetries+1 times.
// A zero timeout leaves attempts bounded only by the caller's context.
func WithRetry(p LLMProvider, maxRetries int, timeout time.Duration) *RetryingProvider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryingProvider{
		next:       p,
		maxRetries: maxRetries,
		timeout:    timeout,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *RetryingProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	var out string
	err := r.do(ctx, func(attemptCtx context.Context) error {
		reply, err := r.next.Chat(attemptCtx, history, options...)
		if err != nil {
			return err
		}
		out = reply
		return nil
	})
	return out, err
}

func (r *RetryingProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return r.Chat(ctx, []Message{UserMessage(prompt)}, options...)
}

func (r *RetryingProvider) do(ctx context.Context, call func(context.Context) error) error {
	operation := func() error {
		attemptCtx := ctx
		if r.timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, r.timeout)
			defer cancel()
		}
		err := call(attemptCtx)
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxRetries)), ctx)
	return backoff.Retry(operation, b)
}
