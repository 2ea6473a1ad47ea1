package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
bus: /dev/i2c-3
address: 0x30
period_ms: 55
samples: 5
interval: 100ms
timeout: 250ms
signal_rate_limit: 0.1
xshut:
  enable: true
  chip: gpiochip4
  line: 17
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Bus != "/dev/i2c-3" || cfg.Address != 0x30 {
		t.Fatalf("bus %q address 0x%X", cfg.Bus, cfg.Address)
	}
	if cfg.PeriodMs != 55 || cfg.Samples != 5 {
		t.Fatalf("period %d samples %d", cfg.PeriodMs, cfg.Samples)
	}
	if cfg.Interval != 100*time.Millisecond || cfg.Timeout != 250*time.Millisecond {
		t.Fatalf("interval %v timeout %v", cfg.Interval, cfg.Timeout)
	}
	if !cfg.XShut.Enable || cfg.XShut.Chip != "gpiochip4" || cfg.XShut.Line != 17 {
		t.Fatalf("xshut %+v", cfg.XShut)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "continuous: true\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := defaultConfig()
	want.Continuous = true

	if cfg != want {
		t.Fatalf("got %+v want %+v", cfg, want)
	}
	if cfg.Address != 0x29 {
		t.Fatalf("default address 0x%X", cfg.Address)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"wide address":   "address: 0x80\n",
		"rate limit":     "signal_rate_limit: 600\n",
		"negative line":  "xshut:\n  enable: true\n  line: -1\n",
		"malformed yaml": "bus: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
