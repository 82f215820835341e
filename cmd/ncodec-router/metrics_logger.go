package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kstaniek/go-ncodec/internal/trace"
)

func startMetricsLogger(ctx context.Context, interval time.Duration, l *slog.Logger, wg *sync.WaitGroup) {
	if interval <= 0 {
		return
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				snap := trace.Snap()
				l.Info("trace_snapshot",
					"can_writes", snap.CanWrites,
					"can_reads", snap.CanReads,
					"can_write_bytes", snap.CanWriteBytes,
					"can_read_bytes", snap.CanReadBytes,
					"pdu_writes", snap.PduWrites,
					"pdu_reads", snap.PduReads,
					"pdu_write_bytes", snap.PduWriteBytes,
					"pdu_read_bytes", snap.PduReadBytes,
				)
			case <-ctx.Done():
				return
			}
		}
	}()
}
