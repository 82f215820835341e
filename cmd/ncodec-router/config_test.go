package main

import "testing"

func validConfig() *appConfig {
	return &appConfig{
		modelDescription: "modelDescription.xml",
		buses:            busFlag{"can0=application/x-automotive-bus;interface=stream;type=frame;bus=can;schema=fbs"},
		streamCapacity:   4096,
		logFormat:        "text",
		logLevel:         "info",
	}
}

func TestConfigValidateOK(t *testing.T) {
	if err := validConfig().validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*appConfig)
	}{
		{"missingModelDescription", func(c *appConfig) { c.modelDescription = "" }},
		{"noBuses", func(c *appConfig) { c.buses = nil }},
		{"malformedBus", func(c *appConfig) { c.buses = busFlag{"no-equals-sign"} }},
		{"badLogFormat", func(c *appConfig) { c.logFormat = "xml" }},
		{"badLogLevel", func(c *appConfig) { c.logLevel = "loud" }},
		{"badStreamCapacity", func(c *appConfig) { c.streamCapacity = 0 }},
		{"negativeLogMetricsInterval", func(c *appConfig) { c.logMetricsEvery = -1 }},
	}
	for _, tc := range tests {
		c := validConfig()
		tc.mod(c)
		if err := c.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestBusDescriptorsParsesBinding(t *testing.T) {
	c := validConfig()
	descs, err := c.busDescriptors()
	if err != nil {
		t.Fatalf("busDescriptors: %v", err)
	}
	if len(descs) != 1 || descs[0].busID != "can0" {
		t.Fatalf("descs = %+v", descs)
	}
}

func TestApplyEnvOverridesSkipsExplicitFlags(t *testing.T) {
	t.Setenv("NCODEC_ROUTER_LOG_LEVEL", "debug")
	t.Setenv("NCODEC_ROUTER_STREAM_CAPACITY", "8192")

	c := validConfig()
	set := map[string]struct{}{"log-level": {}}
	if err := applyEnvOverrides(c, set); err != nil {
		t.Fatalf("applyEnvOverrides: %v", err)
	}
	if c.logLevel != "info" {
		t.Fatalf("logLevel = %q, want unchanged (flag was explicit)", c.logLevel)
	}
	if c.streamCapacity != 8192 {
		t.Fatalf("streamCapacity = %d, want 8192 from env", c.streamCapacity)
	}
}
