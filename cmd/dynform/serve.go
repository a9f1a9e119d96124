package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/session"
	"github.com/goliatone/go-dynform/internal/server"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form as a web page",
		Long: `Serve the form over HTTP. Every page view loads the schema and owns its
own form; submitting posts the answers and shows the outcome in a dialog.

With --mock the server also answers the schema and submission endpoints
itself, and points the form at them unless they were configured.`,
		RunE: runServe,
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Duration("grace", 5*time.Second, "shutdown grace period")
	cmd.Flags().Duration("session-ttl", 30*time.Minute, "idle time before a page session expires")
	cmd.Flags().Bool("mock", false, "serve the mock schema and submission endpoints")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cfg.Server.Mock {
		schemaURL, submitURL := server.MockURLs(cfg.Server.Addr)
		if cfg.Schema.Source == orchestrator.DefaultSchemaURL {
			cfg.Schema.Source = schemaURL
		}
		if cfg.Submit.URL == orchestrator.DefaultSubmitURL {
			cfg.Submit.URL = submitURL
		}
	}

	orch, err := newOrchestrator(cfg, logger)
	if err != nil {
		return err
	}
	store := session.NewStore(cfg.Server.SessionTTL, session.WithLogger(logger))
	srv, err := server.New(orch, store,
		server.WithLogger(logger),
		server.WithMock(cfg.Server.Mock),
		server.WithPageText(server.PageText{Title: cfg.Page.Title, Intro: cfg.Page.Intro}),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Str("schema", cfg.Schema.Source).
		Str("submit_url", cfg.Submit.URL).
		Bool("mock", cfg.Server.Mock).
		Msg("starting server")
	return srv.Run(ctx, cfg.Server.Addr, cfg.Server.ShutdownGrace)
}

