package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gravitrone/paperless-mail/internal/paperless"
)

// ListCmd returns the `paperless-mail list` command group.
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List server metadata",
	}
	cmd.AddCommand(listSubCmd("tags", "List tags", printTags))
	cmd.AddCommand(listSubCmd("correspondents", "List correspondents", printCorrespondents))
	cmd.AddCommand(listSubCmd("types", "List document types", printDocumentTypes))
	return cmd
}

type listPrinter func(ctx context.Context, client *paperless.Client, out io.Writer) error

func listSubCmd(use, short string, run listPrinter) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := NewRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()
			return run(cmd.Context(), rt.Client, cmd.OutOrStdout())
		},
	}
}

func printTags(ctx context.Context, client *paperless.Client, out io.Writer) error {
	tags, err := client.ListTags(ctx)
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	if len(tags) == 0 {
		fmt.Fprintln(out, "no tags found")
		return nil
	}
	for _, t := range tags {
		inbox := ""
		if t.IsInboxTag {
			inbox = "  (inbox)"
		}
		fmt.Fprintf(out, "  %5d  %s  [%d docs]%s\n", t.ID, t.Name, t.DocumentCount, inbox)
	}
	return nil
}

func printCorrespondents(ctx context.Context, client *paperless.Client, out io.Writer) error {
	items, err := client.ListCorrespondents(ctx)
	if err != nil {
		return fmt.Errorf("list correspondents: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "no correspondents found")
		return nil
	}
	for _, c := range items {
		fmt.Fprintf(out, "  %5d  %s  [%d docs]\n", c.ID, c.Name, c.DocumentCount)
	}
	return nil
}

func printDocumentTypes(ctx context.Context, client *paperless.Client, out io.Writer) error {
	items, err := client.ListDocumentTypes(ctx)
	if err != nil {
		return fmt.Errorf("list document types: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "no document types found")
		return nil
	}
	for _, d := range items {
		fmt.Fprintf(out, "  %5d  %s  [%d docs]\n", d.ID, d.Name, d.DocumentCount)
	}
	return nil
}
