// Package main loads catalog fixtures into the database.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/linagora/Argus-du-Libre/internal/cmd/seed"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SEED] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seedcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}
