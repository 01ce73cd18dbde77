package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prince-Sf/Corelytics/internal/platform/logger"
)

var exit = os.Exit

// NotifyContext is cancelled on the first SIGINT or SIGTERM so in-flight
// generations can drain. A second signal exits with status 1.
func NotifyContext(parent context.Context, log *logger.Logger) (context.Context, context.CancelFunc) {
	if log == nil {
		log = logger.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigs:
			log.Info("shutdown requested", "signal", sig.String())
			cancel()
		case <-done:
			return
		}
		select {
		case sig := <-sigs:
			log.Warn("forced exit", "signal", sig.String())
			exit(1)
		case <-done:
		}
	}()

	var once sync.Once
	return ctx, func() {
		once.Do(func() {
			signal.Stop(sigs)
			close(done)
			cancel()
		})
	}
}
