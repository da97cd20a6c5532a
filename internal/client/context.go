package client

import (
	"context"
	"time"
)

// DefaultTimeout is the default timeout for a single HTTP request
const DefaultTimeout = 30 * time.Second

// WithCustomTimeout creates a context with a custom timeout. A non-positive
// timeout only makes the context cancelable.
func WithCustomTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
