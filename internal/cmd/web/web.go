// Package web wires configuration parsing and startup for the catalog web
// service.
package web

import (
	"context"
	"flag"
	"fmt"

	"github.com/linagora/Argus-du-Libre/internal/catalog/storage/sqlite"
	platformcmd "github.com/linagora/Argus-du-Libre/internal/platform/cmd"
	"github.com/linagora/Argus-du-Libre/internal/services/web"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr      string `env:"ARGUS_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath        string `env:"ARGUS_DB_PATH" envDefault:"argus.db"`
	AppName       string `env:"ARGUS_APP_NAME"`
	AdminEditorID string `env:"ARGUS_ADMIN_EDITOR_ID"`
	AdminSecret   string `env:"ARGUS_ADMIN_SECRET"`
	SessionSecret string `env:"ARGUS_SESSION_SECRET"`
}

// ParseConfig loads env defaults and parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the catalog web server and blocks until the context ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open catalog store: %w", err)
		}
		server, err := web.NewServer(web.Config{
			HTTPAddr:      cfg.HTTPAddr,
			AppName:       cfg.AppName,
			AdminEditorID: cfg.AdminEditorID,
			AdminSecret:   cfg.AdminSecret,
			SessionSecret: cfg.SessionSecret,
		}, store)
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}
