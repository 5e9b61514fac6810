package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// NotifyContext 收到 SIGINT/SIGTERM 时取消返回的 context
// onSignal 在取消前调用一次，可为 nil；stop 释放信号监听
func NotifyContext(parent context.Context, onSignal func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			if onSignal != nil {
				onSignal(sig)
			}
			cancel()
		case <-done:
		case <-ctx.Done():
		}
	}()

	stopped := false
	stop := func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(sigChan)
		close(done)
		cancel()
	}
	return ctx, stop
}
