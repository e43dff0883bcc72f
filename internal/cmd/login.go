package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitrone/paperless-mail/internal/config"
	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/paperless"
)

// RunInteractiveLogin prompts for the server URL and API token, checks
// them against the server and persists the config. Settings other than
// the connection survive a re-login.
func RunInteractiveLogin(ctx context.Context, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	cfg, err := config.Read()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		defaults := config.Defaults()
		cfg = &defaults
	}

	fmt.Fprint(out, "paperless url: ")
	url, _ := reader.ReadString('\n')
	url = strings.TrimSpace(url)
	if url == "" {
		return fmt.Errorf("url is required")
	}

	fmt.Fprint(out, "api token: ")
	token, _ := reader.ReadString('\n')
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	cfg.URL = url
	cfg.Token = token
	if err := cfg.Validate(); err != nil {
		return err
	}

	printer := i18n.New(cfg.Language)
	fmt.Fprintln(out, printer.Sprintf(i18n.MsgLoginConnecting, cfg.URL))
	client := paperless.NewClient(cfg.URL, cfg.Token)
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintln(out, printer.Sprintf(i18n.MsgLoginSaved, cfg.URL))
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// LoginCmd returns the `paperless-mail login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect to a Paperless-ngx server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return RunInteractiveLogin(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
