package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
	"github.com/goliatone/go-dynform/pkg/renderers/snapshot"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the freshly built form as HTML or a JSON snapshot",
		RunE:  runRender,
	}
	cmd.Flags().StringP("renderer", "r", html.Name, "renderer to use (html, json)")
	cmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	cmd.Flags().Bool("fragment", false, "emit only the form element instead of a full page")
	cmd.Flags().String("templates", "", "directory overriding the built-in HTML templates")
	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	rendererName, _ := cmd.Flags().GetString("renderer")
	output, _ := cmd.Flags().GetString("output")
	fragment, _ := cmd.Flags().GetBool("fragment")
	templatesDir, _ := cmd.Flags().GetString("templates")

	var htmlOptions []html.Option
	if fragment {
		htmlOptions = append(htmlOptions, html.WithFragment())
	}
	if templatesDir != "" {
		htmlOptions = append(htmlOptions, html.WithTemplatesDir(templatesDir))
	}
	htmlRenderer, err := html.New(htmlOptions...)
	if err != nil {
		return err
	}
	registry := render.NewRegistry()
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(snapshot.New(snapshot.WithIndent("  ")))

	orch, err := newOrchestrator(cfg, logger, orchestrator.WithRegistry(registry))
	if err != nil {
		return err
	}
	out, err := orch.Generate(cmd.Context(), orchestrator.Request{}, rendererName, render.RenderOptions{
		Title: cfg.Page.Title,
		Intro: cfg.Page.Intro,
	})
	if err != nil {
		return fmt.Errorf("failed to generate form: %w", err)
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Form written to %s\n", output)
	return nil
}
