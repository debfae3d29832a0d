package seed

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.FixturePath != "seed.yaml" {
		t.Fatalf("FixturePath = %q", cfg.FixturePath)
	}
}

func TestRunSeedsFromFixtureFile(t *testing.T) {
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "fixture.yaml")
	fixture := `
tags:
  - name: Forge
    slug: forge
software:
  - name: GitLab
    slug: gitlab
    state: published
`
	if err := os.WriteFile(fixturePath, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	err := Run(context.Background(), Config{
		DBPath:      filepath.Join(dir, "catalog.db"),
		FixturePath: fixturePath,
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "1 software entries") {
		t.Fatalf("out = %q", out.String())
	}
}

func TestRunFailsOnMissingFixture(t *testing.T) {
	err := Run(context.Background(), Config{
		DBPath:      filepath.Join(t.TempDir(), "catalog.db"),
		FixturePath: filepath.Join(t.TempDir(), "missing.yaml"),
	}, nil)
	if err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}
