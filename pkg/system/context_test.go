package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunWithContext_Completes(t *testing.T) {
	err := RunWithContext(context.Background(), func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
}

func TestRunWithContext_PropagatesError(t *testing.T) {
	want := errors.New("operation failed")
	err := RunWithContext(context.Background(), func(context.Context) error {
		return want
	})
	require.ErrorIs(t, err, want)
}

func TestRunWithContext_PreCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := RunWithContext(ctx, func(context.Context) error {
		ran = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, ran)
}

func TestRunWithContext_CancellationSignalsOperation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	go func() {
		<-started
		cancel()
	}()

	err := RunWithContext(ctx, func(opCtx context.Context) error {
		close(started)
		select {
		case <-opCtx.Done():
			return opCtx.Err()
		case <-time.After(5 * time.Second):
			return errors.New("operation was never signaled")
		}
	})
	require.ErrorIs(t, err, context.Canceled)
}
