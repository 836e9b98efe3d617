package main

import (
	"fmt"
	"log/slog"

	"github.com/jonathan/fitscore/internal/db"
	"github.com/jonathan/fitscore/internal/matching"
	"github.com/jonathan/fitscore/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes /score and /rank. The catalog configured via DATABASE_URL or FITSCORE_SQLITE backs /rank requests that carry no jobs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default $PORT or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Port
	if servePort > 0 {
		port = servePort
	}

	checker, err := cfg.NewChecker()
	if err != nil {
		return err
	}
	ranker, err := cfg.NewRanker(matching.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	source, err := db.OpenSource(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		return err
	}

	srv, err := server.New(server.Config{Port: port, Logger: slog.Default()}, checker, ranker, source)
	if err != nil {
		if source != nil {
			source.Close()
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
