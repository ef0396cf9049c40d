package system

import (
	"context"
)

// RunWithContext executes a blocking operation with context awareness.
//
// The function handles three key scenarios:
//   - Normal completion: the operation finishes and its error is returned
//   - Context cancellation: the operation is signaled to stop but allowed
//     to finish gracefully before the call returns
//   - Pre-cancelled context: the operation never starts
func RunWithContext(ctx context.Context, operation func(context.Context) error) error {
	// Fast feedback if we were cancelled before starting.
	if err := ctx.Err(); err != nil {
		return err
	}

	// The operation gets its own context so interruption never leaves a
	// native handle half-released.
	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Buffered so the goroutine can exit even if the parent context is
	// cancelled and nobody reads immediately.
	done := make(chan error, 1)

	go func() {
		done <- operation(opCtx)
		close(done)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Parent context was cancelled. Signal the operation to stop,
		// but still wait for it so resources are fully released.
		cancel()
		return <-done
	}
}
