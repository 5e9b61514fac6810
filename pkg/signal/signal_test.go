package signal

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyContextCancelsOnSignal(t *testing.T) {
	got := make(chan os.Signal, 1)
	ctx, stop := NotifyContext(context.Background(), func(s os.Signal) { got <- s })
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled")
	}
	assert.Equal(t, syscall.SIGINT, <-got)
}

func TestNotifyContextStop(t *testing.T) {
	called := false
	ctx, stop := NotifyContext(context.Background(), func(os.Signal) { called = true })
	stop()
	stop()

	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, called)
}
