package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/kstaniek/go-ncodec/internal/bustopology"
	"github.com/kstaniek/go-ncodec/internal/ncodec"
	"github.com/kstaniek/go-ncodec/internal/ncstream"
	"github.com/kstaniek/go-ncodec/internal/trace"
)

// Helper implementations moved to dedicated files: version.go, config.go, logger.go, metrics_logger.go.

func main() {
	cfg, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("ncodec-router %s (commit %s, built %s)\n", version, commit, date)
		return
	}
	if cfg == nil {
		os.Exit(1)
	}
	l := setupLogger(cfg.logFormat, cfg.logLevel)

	r, insts, err := buildRouter(cfg)
	if err != nil {
		l.Error("router_init_error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	startMetricsLogger(ctx, cfg.logMetricsEvery, l, &wg)

	ready := true
	trace.SetReadinessFunc(func() bool { return ready })
	var metricsSrv *http.Server
	if cfg.metricsAddr != "" {
		trace.InitBuildInfo(version, commit, date)
		metricsSrv = trace.StartHTTP(cfg.metricsAddr)
	}

	l.Info("router_started", "buses", len(insts), "model_description", cfg.modelDescription)

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigCh
	l.Info("shutdown_signal", "signal", s.String())
	ready = false
	cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(context.Background())
	}
	if err := r.Destroy(); err != nil {
		l.Error("router_destroy_error", "error", err)
	}
	wg.Wait()
}

// buildRouter parses the model description and opens one codec Instance per
// -bus binding, each backed by a fixed-capacity memory stream, registering
// all of them with a new Router.
func buildRouter(cfg *appConfig) (*bustopology.Router, []*ncodec.Instance, error) {
	f, err := os.Open(cfg.modelDescription)
	if err != nil {
		return nil, nil, fmt.Errorf("open model description: %w", err)
	}
	defer f.Close()

	md, err := bustopology.ParseModelDescription(f)
	if err != nil {
		return nil, nil, fmt.Errorf("parse model description: %w", err)
	}

	descs, err := cfg.busDescriptors()
	if err != nil {
		return nil, nil, err
	}

	r := bustopology.NewRouter(md)
	insts := make([]*ncodec.Instance, 0, len(descs))
	for _, d := range descs {
		stream := ncstream.NewMemoryStream(cfg.streamCapacity)
		inst, err := ncodec.Open(d.mime, stream)
		if err != nil {
			return nil, nil, fmt.Errorf("open bus %q: %w", d.busID, err)
		}
		r.Add(d.busID, inst)
		insts = append(insts, inst)
	}
	return r, insts, nil
}
