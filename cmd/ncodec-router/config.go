package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// busFlag accumulates repeated -bus busID=mimeDescriptor flag values.
type busFlag []string

func (b *busFlag) String() string { return strings.Join(*b, ",") }

func (b *busFlag) Set(value string) error {
	*b = append(*b, value)
	return nil
}

type appConfig struct {
	modelDescription string
	buses            busFlag
	streamCapacity   int
	logFormat        string
	logLevel         string
	metricsAddr      string
	logMetricsEvery  time.Duration
}

// busDescriptor is one parsed -bus busID=mimeDescriptor entry.
type busDescriptor struct {
	busID string
	mime  string
}

func (c *appConfig) busDescriptors() ([]busDescriptor, error) {
	descs := make([]busDescriptor, 0, len(c.buses))
	for _, raw := range c.buses {
		id, mime, ok := strings.Cut(raw, "=")
		id = strings.TrimSpace(id)
		mime = strings.TrimSpace(mime)
		if !ok || id == "" || mime == "" {
			return nil, fmt.Errorf("invalid -bus value %q, want busID=mimeDescriptor", raw)
		}
		descs = append(descs, busDescriptor{busID: id, mime: mime})
	}
	return descs, nil
}

func parseFlags() (*appConfig, bool) {
	cfg := &appConfig{}
	modelDescription := flag.String("model-description", "", "Path to the FMI modelDescription.xml mapping buses to value references")
	var buses busFlag
	flag.Var(&buses, "bus", "busID=mimeDescriptor codec binding; repeatable")
	streamCapacity := flag.Int("stream-capacity", 4096, "Fixed byte capacity of each bus's memory stream")
	logFormat := flag.String("log-format", "text", "Log format: text|json")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	metricsAddr := flag.String("metrics-addr", "", "Metrics HTTP listen address (e.g., :9100); empty disables")
	logMetricsEvery := flag.Duration("log-metrics-interval", 0, "If >0, periodically log trace counters")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	setFlags := map[string]struct{}{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = struct{}{} })

	cfg.modelDescription = *modelDescription
	cfg.buses = buses
	cfg.streamCapacity = *streamCapacity
	cfg.logFormat = *logFormat
	cfg.logLevel = *logLevel
	cfg.metricsAddr = *metricsAddr
	cfg.logMetricsEvery = *logMetricsEvery

	if err := applyEnvOverrides(cfg, setFlags); err != nil {
		fmt.Printf("environment override error: %v\n", err)
		return nil, *showVersion
	}
	if err := cfg.validate(); err != nil {
		fmt.Printf("configuration error: %v\n", err)
		return nil, *showVersion
	}
	return cfg, *showVersion
}

// validate checks value shape only; it never touches the filesystem or
// network.
func (c *appConfig) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.modelDescription == "" {
		return errors.New("model-description is required")
	}
	if len(c.buses) == 0 {
		return errors.New("at least one -bus binding is required")
	}
	if _, err := c.busDescriptors(); err != nil {
		return err
	}
	switch c.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log-format: %s", c.logFormat)
	}
	switch c.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level: %s", c.logLevel)
	}
	if c.streamCapacity <= 0 {
		return fmt.Errorf("stream-capacity must be > 0 (got %d)", c.streamCapacity)
	}
	if c.logMetricsEvery < 0 {
		return fmt.Errorf("log-metrics-interval must be >= 0")
	}
	return nil
}

// applyEnvOverrides maps NCODEC_ROUTER_* environment variables to scalar
// config fields unless the matching flag was explicitly set. The repeatable
// -bus binding is flag-only.
func applyEnvOverrides(c *appConfig, set map[string]struct{}) error {
	var firstErr error
	get := func(k string) (string, bool) { v, ok := os.LookupEnv(k); return strings.TrimSpace(v), ok }

	if _, ok := set["model-description"]; !ok {
		if v, ok := get("NCODEC_ROUTER_MODEL_DESCRIPTION"); ok && v != "" {
			c.modelDescription = v
		}
	}
	if _, ok := set["stream-capacity"]; !ok {
		if v, ok := get("NCODEC_ROUTER_STREAM_CAPACITY"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.streamCapacity = n
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid NCODEC_ROUTER_STREAM_CAPACITY: %w", err)
			}
		}
	}
	if _, ok := set["log-format"]; !ok {
		if v, ok := get("NCODEC_ROUTER_LOG_FORMAT"); ok && v != "" {
			c.logFormat = v
		}
	}
	if _, ok := set["log-level"]; !ok {
		if v, ok := get("NCODEC_ROUTER_LOG_LEVEL"); ok && v != "" {
			c.logLevel = v
		}
	}
	if _, ok := set["metrics-addr"]; !ok {
		if v, ok := get("NCODEC_ROUTER_METRICS"); ok {
			c.metricsAddr = v
		}
	}
	if _, ok := set["log-metrics-interval"]; !ok {
		if v, ok := get("NCODEC_ROUTER_LOG_METRICS_INTERVAL"); ok && v != "" {
			if d, err := time.ParseDuration(v); err == nil && d >= 0 {
				c.logMetricsEvery = d
			} else if err != nil && firstErr == nil {
				firstErr = fmt.Errorf("invalid NCODEC_ROUTER_LOG_METRICS_INTERVAL: %w", err)
			}
		}
	}
	return firstErr
}
