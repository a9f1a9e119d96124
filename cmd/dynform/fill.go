package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
	"github.com/goliatone/go-dynform/pkg/submit"
)

func newFillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill in and submit the form from the terminal",
		RunE:  runFill,
	}
}

func runFill(cmd *cobra.Command, _ []string) error {
	term := tui.New(tui.WithLogger(logger), tui.WithTitle(cfg.Page.Title))

	orch, err := newOrchestrator(cfg, logger, orchestrator.WithNotifier(term.Notifier()))
	if err != nil {
		return err
	}
	page, err := orch.Open(cmd.Context(), orchestrator.Request{})
	if err != nil {
		return err
	}
	if page.LoadErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "The questions could not be loaded; only the submit control is available.")
	}

	err = term.Run(cmd.Context(), page.Form)
	if errors.Is(err, submit.ErrNotAcknowledged) {
		logger.Warn().Err(err).Msg("success notice interrupted")
		fmt.Fprintln(cmd.OutOrStdout(), "Form submitted.")
		return nil
	}
	if errors.Is(err, tui.ErrAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Form not submitted.")
		return nil
	}
	return err
}
