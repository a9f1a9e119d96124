package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/internal/logging"
)

var (
	// Version information (set by build flags)
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"

	cfgFile string
	envFile string

	cfg    *config.Config
	logger = zerolog.Nop()
)

// flagBindings maps configuration keys to the flags that override them.
// Commands only bind the flags they define.
var flagBindings = map[string]string{
	"schema.source":         "schema",
	"schema.timeout":        "schema-timeout",
	"schema.strict":         "strict",
	"schema.preset":         "preset",
	"submit.url":            "submit-url",
	"submit.timeout":        "submit-timeout",
	"server.addr":           "addr",
	"server.shutdown_grace": "grace",
	"server.session_ttl":    "session-ttl",
	"server.mock":           "mock",
	"page.title":            "title",
	"page.submit_label":     "submit-label",
	"logging.level":         "log-level",
	"logging.format":        "log-format",
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dynform",
		Short: "Render, serve and fill forms built from a remote question schema",
		Long: `dynform fetches a question schema, builds a form from it, validates
answers as fields are completed and posts the collected answers as JSON.

The same form can be served as a web page (serve), filled in the terminal
(fill) or written out as HTML or a JSON snapshot (render).`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: .dynform.yaml)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", logging.FormatConsole, "log format (console, json)")
	flags.String("schema", "", "question schema URL or file path")
	flags.Duration("schema-timeout", 0, "schema fetch timeout (0 disables)")
	flags.Bool("strict", false, "reject schemas with duplicate ids or names")
	flags.String("preset", "", "JSON or YAML file of descriptor overrides")
	flags.String("submit-url", "", "address the answers are posted to")
	flags.Duration("submit-timeout", 0, "submission timeout (0 disables)")
	flags.String("title", "", "page title")
	flags.String("submit-label", "Submit", "text of the submit control")

	root.AddCommand(newServeCmd(), newFillCmd(), newRenderCmd(), newVersionCmd())
	root.SetVersionTemplate(fmt.Sprintf("dynform v%s\n", version))
	return root
}

func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	binds := make(map[string]string, len(flagBindings))
	for key, name := range flagBindings {
		if cmd.Flags().Lookup(name) != nil {
			binds[key] = name
		}
	}

	loaded, err := config.Load(cfgFile, config.WithEnvFile(envFile), config.WithFlags(cmd.Flags(), binds))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg = loaded

	logger, err = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Debug().
		Str("version", version).
		Str("config_file", cfgFile).
		Str("schema", cfg.Schema.Source).
		Str("submit_url", cfg.Submit.URL).
		Msg("dynform initialized")
	return nil
}
