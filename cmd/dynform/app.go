package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	dynform "github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/question"
	"github.com/goliatone/go-dynform/pkg/submit"
)

// newOrchestrator wires the pipeline from configuration. extra options are
// applied last.
func newOrchestrator(c *config.Config, log zerolog.Logger, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	source, err := c.SchemaSource()
	if err != nil {
		return nil, fmt.Errorf("schema source: %w", err)
	}

	loader := dynform.NewLoader(
		question.WithHTTPFallback(c.Schema.Timeout),
		question.WithStrict(c.Schema.Strict),
	)
	sender := submit.NewHTTPSender(c.Submit.URL, submit.WithTimeout(c.Submit.Timeout))

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithSource(source),
		orchestrator.WithSender(sender),
		orchestrator.WithMessages(c.Messages()),
		orchestrator.WithSubmitLabel(c.Page.SubmitLabel),
		orchestrator.WithLogger(log),
	}
	if c.Schema.Preset != "" {
		preset, err := loadPreset(c.Schema.Preset)
		if err != nil {
			return nil, err
		}
		options = append(options, orchestrator.WithSchemaTransformer(preset))
	}
	return dynform.NewOrchestrator(append(options, extra...)...), nil
}

func loadPreset(path string) (*orchestrator.PresetTransformer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	return orchestrator.NewPresetTransformer(data)
}
