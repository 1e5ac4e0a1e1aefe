package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := cfg.CDPAddress, "127.0.0.1"; got != want {
		t.Fatalf("CDPAddress = %q; want %q", got, want)
	}
	if got, want := cfg.CDPPort, 9222; got != want {
		t.Fatalf("CDPPort = %d; want %d", got, want)
	}
	if got, want := cfg.HTTPTimeoutMS, 5000; got != want {
		t.Fatalf("HTTPTimeoutMS = %d; want %d", got, want)
	}
	if got, want := cfg.CloseDelayMS, 100; got != want {
		t.Fatalf("CloseDelayMS = %d; want %d", got, want)
	}
	if got, want := cfg.SitesFile, "sites.json"; got != want {
		t.Fatalf("SitesFile = %q; want %q", got, want)
	}
	if cfg.DataDir != "" {
		t.Fatalf("DataDir = %q; want empty", cfg.DataDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TABJANITOR_CDP_PORT", "9333")
	t.Setenv("TABJANITOR_SITES_FILE", "/etc/tabjanitor/sites.yaml")
	t.Setenv("TABJANITOR_HTTP_TIMEOUT_MS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got, want := cfg.CDPPort, 9333; got != want {
		t.Fatalf("CDPPort = %d; want %d", got, want)
	}
	if got, want := cfg.SitesFile, "/etc/tabjanitor/sites.yaml"; got != want {
		t.Fatalf("SitesFile = %q; want %q", got, want)
	}
	// Unparseable ints fall back to the default.
	if got, want := cfg.HTTPTimeoutMS, 5000; got != want {
		t.Fatalf("HTTPTimeoutMS = %d; want %d", got, want)
	}
}

func TestDevToolsURL(t *testing.T) {
	cfg := &Config{CDPAddress: "127.0.0.1", CDPPort: 9222}
	if got, want := cfg.DevToolsURL(), "http://127.0.0.1:9222"; got != want {
		t.Fatalf("DevToolsURL() = %q; want %q", got, want)
	}
}
