package shutdown

import (
	"context"
	"log/slog"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

type Operation = gfshutdown.Operation

// OnSignal waits for SIGINT or SIGTERM, then runs every operation within
// timeout. The returned channel yields the process exit code.
func OnSignal(log *slog.Logger, timeout time.Duration, ops map[string]Operation) <-chan int {
	wrapped := make(map[string]gfshutdown.Operation, len(ops))
	for name, op := range ops {
		wrapped[name] = logged(log, name, op)
	}
	return gfshutdown.GracefulShutdown(context.Background(), timeout, wrapped)
}

func logged(log *slog.Logger, name string, op Operation) Operation {
	return func(ctx context.Context) error {
		start := time.Now()
		err := op(ctx)
		if err != nil {
			log.Error("shutdown step failed", slog.String("step", name), slog.Any("err", err))
			return err
		}
		log.Info("shutdown step done", slog.String("step", name), slog.Duration("took", time.Since(start)))
		return nil
	}
}
