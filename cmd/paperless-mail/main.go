package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/paperless-mail/internal/cmd"
	"github.com/gravitrone/paperless-mail/internal/logging"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paperless-mail <file>",
		Short: "Send emails to Paperless-ngx",
		Long:  "paperless-mail: review an email, pick metadata and attachments, and upload it to Paperless-ngx.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runTUI(c.Context(), path)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.SendCmd())
	root.AddCommand(cmd.StatusCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(ctx context.Context, path string) error {
	rt, err := cmd.NewRuntime()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, "not logged in. run 'paperless-mail login' first.")
		}
		return err
	}
	defer rt.Close()

	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("the dialog needs a terminal; use 'paperless-mail send' instead")
	}

	// A load error is shown inside the dialog.
	payload, loadErr := mail.Load(path)
	if loadErr != nil {
		rt.Logger.Error("load payload failed", logging.File(path), logging.Err(loadErr))
	}

	model := ui.NewDialogModel(payload, loadErr, ui.DialogDeps{
		Context:        ctx,
		Catalog:        rt.Client,
		Transport:      rt.Transport(),
		Printer:        rt.Printer,
		Logger:         rt.Logger,
		Threshold:      rt.Config.FuzzyThreshold,
		AddDefaultTag:  rt.Config.AddDefaultTag,
		DefaultTagName: rt.Config.DefaultTag,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
