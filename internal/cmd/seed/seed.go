// Package seed wires configuration parsing and execution for the catalog
// fixture seeder.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage/sqlite"
	platformcmd "github.com/linagora/Argus-du-Libre/internal/platform/cmd"
	"github.com/linagora/Argus-du-Libre/internal/seed"
)

// Config holds the seed command configuration.
type Config struct {
	DBPath      string `env:"ARGUS_DB_PATH" envDefault:"argus.db"`
	FixturePath string `env:"ARGUS_SEED_FIXTURE" envDefault:"seed.yaml"`
}

// ParseConfig loads env defaults and parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.FixturePath, "fixture", cfg.FixturePath, "YAML fixture file to load")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the fixture file into the catalog database.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	fixture, err := seed.Load(cfg.FixturePath)
	if err != nil {
		return err
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open catalog store: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := seed.Run(ctx, store, fixture); err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d categories, %d tags, %d software entries\n",
		len(fixture.Categories), len(fixture.Tags), len(fixture.Software))
	return nil
}
