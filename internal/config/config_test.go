package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tiliavir/punchcard/internal/config"
)

func TestLoadFirstRunWritesTemplate(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PUNCHCARD_HOME", home)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != config.DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Server.Addr, config.DefaultAddr)
	}
	if cfg.Outlook.TenantID != config.DefaultTenantID {
		t.Errorf("TenantID = %q, want %q", cfg.Outlook.TenantID, config.DefaultTenantID)
	}

	// The annotated template was created and parses on the second load.
	if _, err := os.Stat(filepath.Join(home, "config.json")); err != nil {
		t.Fatalf("config template missing: %v", err)
	}
	again, err := config.Load()
	if err != nil {
		t.Fatalf("Load (template): %v", err)
	}
	if again.Server.Addr != config.DefaultAddr {
		t.Errorf("template Addr = %q, want %q", again.Server.Addr, config.DefaultAddr)
	}
}

func TestLoadPartialConfigBackfillsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PUNCHCARD_HOME", home)

	content := `// custom listen port only
{
  "server": { "addr": "127.0.0.1:9000" }
}
`
	if err := os.WriteFile(filepath.Join(home, "config.json"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q, want the configured value", cfg.Server.Addr)
	}
	if cfg.Server.CORSOrigin != config.DefaultCORSOrigin {
		t.Errorf("CORSOrigin = %q, want default backfill", cfg.Server.CORSOrigin)
	}
	if cfg.Outlook.ClientID != config.DefaultClientID {
		t.Errorf("ClientID = %q, want default backfill", cfg.Outlook.ClientID)
	}
}

func TestResolveDataDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PUNCHCARD_HOME", home)

	var cfg config.Config
	dir, err := cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if dir != home {
		t.Errorf("ResolveDataDir = %q, want %q", dir, home)
	}

	cfg.DataDir = "/somewhere/else"
	dir, err = cfg.ResolveDataDir()
	if err != nil {
		t.Fatalf("ResolveDataDir with override: %v", err)
	}
	if dir != "/somewhere/else" {
		t.Errorf("ResolveDataDir = %q, want override", dir)
	}
}
