package web

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "argus.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestParseConfigReadsEnv(t *testing.T) {
	t.Setenv("ARGUS_WEB_HTTP_ADDR", "0.0.0.0:9001")
	t.Setenv("ARGUS_ADMIN_EDITOR_ID", "editor")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9001" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.AdminEditorID != "editor" {
		t.Fatalf("AdminEditorID = %q", cfg.AdminEditorID)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ARGUS_DB_PATH", "/tmp/env.db")

	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db", "/tmp/flag.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/flag.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}
