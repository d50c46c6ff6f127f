package metrics

import (
	"context"
	"time"
)

// Observe wraps an operation at the call site, recording its duration and
// outcome on the recorder before passing the result through unchanged.
func Observe[T any](ctx context.Context, r *Recorder, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	v, err := fn(ctx)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.ObserveToolCall(op, outcome, time.Since(start))

	return v, err
}
