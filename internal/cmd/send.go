package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/paperless-mail/internal/dialog"
	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/mail"
	"github.com/gravitrone/paperless-mail/internal/tags"
	"github.com/gravitrone/paperless-mail/internal/upload"
)

// SendOptions are the form values of a non-interactive submit. Correspondent,
// DocumentType and Tags accept names or numeric ids.
type SendOptions struct {
	Title         string
	Correspondent string
	DocumentType  string
	Tags          []string
	Attachments   []int
	NoAttachments bool
	AddDefaultTag bool
}

// SendDeps are the collaborators of Send.
type SendDeps struct {
	Catalog   dialog.CatalogSource
	Transport upload.Transport
	Printer   *i18n.Printer
	Logger    *slog.Logger
	Threshold float64
}

// Send fills a dialog session from opts and submits it. Unlike the
// interactive dialog, names that cannot be resolved are errors.
func Send(ctx context.Context, payload *mail.Payload, opts SendOptions, deps SendDeps) (upload.Result, error) {
	session, err := dialog.Open(payload, nil, dialog.Config{
		Printer:       deps.Printer,
		Logger:        deps.Logger,
		Threshold:     deps.Threshold,
		AddDefaultTag: opts.AddDefaultTag,
	})
	if err != nil {
		return upload.Result{}, err
	}
	defer session.Close()

	var catalog dialog.Catalog
	if deps.Catalog != nil {
		catalog = dialog.FetchCatalog(ctx, deps.Catalog, deps.Logger)
		session.ApplyCatalog(catalog)
	}

	if title := strings.TrimSpace(opts.Title); title != "" {
		session.SetTitle(title)
	}
	if opts.Correspondent != "" {
		id, err := resolveOption("correspondent", catalog.Correspondents, catalog.CorrespondentsErr, opts.Correspondent)
		if err != nil {
			return upload.Result{}, err
		}
		session.SetCorrespondent(&id)
	}
	if opts.DocumentType != "" {
		id, err := resolveOption("document type", catalog.DocumentTypes, catalog.DocumentTypesErr, opts.DocumentType)
		if err != nil {
			return upload.Result{}, err
		}
		session.SetDocumentType(&id)
	}
	for _, value := range opts.Tags {
		name, err := resolveTag(catalog.Tags, catalog.TagsErr, value)
		if err != nil {
			return upload.Result{}, err
		}
		session.Tags.Commit(name)
	}

	switch {
	case opts.NoAttachments:
		session.SelectNoAttachments()
	case len(opts.Attachments) > 0:
		session.SelectNoAttachments()
		for _, i := range opts.Attachments {
			if !session.Attachments.SetChecked(i, true) {
				return upload.Result{}, fmt.Errorf("attachment index %d out of range (0..%d)", i, session.Attachments.Len()-1)
			}
		}
	}

	return session.Submit(ctx, deps.Transport)
}

func resolveOption(kind string, options []dialog.Option, listErr error, value string) (int, error) {
	value = strings.TrimSpace(value)
	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}
	if listErr != nil {
		return 0, fmt.Errorf("resolve %s %q: %w", kind, value, listErr)
	}
	for _, opt := range options {
		if strings.EqualFold(opt.Name, value) {
			return opt.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, value)
}

func resolveTag(candidates []tags.Tag, listErr error, value string) (string, error) {
	value = strings.TrimSpace(value)
	if listErr != nil {
		return "", fmt.Errorf("resolve tag %q: %w", value, listErr)
	}
	id, numErr := strconv.Atoi(value)
	for _, tag := range candidates {
		if numErr == nil && tag.ID == id {
			return tag.Name, nil
		}
		if strings.EqualFold(tag.Name, value) {
			return tag.Name, nil
		}
	}
	return "", fmt.Errorf("unknown tag %q", value)
}

// SendCmd returns the `paperless-mail send` command.
func SendCmd() *cobra.Command {
	var (
		opts SendOptions
		wait time.Duration
	)
	cmd := &cobra.Command{
		Use:   "send <file>",
		Short: "Upload an email without opening the dialog",
		Long:  "Upload an .eml file or a mail client .json export to Paperless-ngx. Attachments are selected by index, starting at 0.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			payload, err := mail.Load(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("default-tag") {
				opts.AddDefaultTag = rt.Config.AddDefaultTag
			}

			ctx := cmd.Context()
			res, err := Send(ctx, payload, opts, SendDeps{
				Catalog:   rt.Client,
				Transport: rt.Transport(),
				Printer:   rt.Printer,
				Logger:    rt.Logger,
				Threshold: rt.Config.FuzzyThreshold,
			})
			out := cmd.OutOrStdout()
			for _, id := range res.TaskIDs {
				fmt.Fprintln(out, rt.Printer.Sprintf(i18n.MsgTaskQueued, id))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(out, rt.Printer.T(i18n.MsgUploadSuccess))

			if wait <= 0 {
				return nil
			}
			ctx, cancel := context.WithTimeout(ctx, wait)
			defer cancel()
			return WaitForTasks(ctx, rt.Client, res.TaskIDs, pollInterval, rt.Printer, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Title, "title", "", "document title (defaults to the subject)")
	f.StringVar(&opts.Correspondent, "correspondent", "", "correspondent name or id")
	f.StringVar(&opts.DocumentType, "type", "", "document type name or id")
	f.StringArrayVar(&opts.Tags, "tag", nil, "tag name or id (repeatable)")
	f.IntSliceVar(&opts.Attachments, "attachment", nil, "attachment index to upload (repeatable)")
	f.BoolVar(&opts.NoAttachments, "no-attachments", false, "upload the email only")
	f.BoolVar(&opts.AddDefaultTag, "default-tag", true, "add the configured default tag")
	f.DurationVarP(&wait, "wait", "w", 0, "poll until the tasks finish, up to this long")
	cmd.MarkFlagsMutuallyExclusive("attachment", "no-attachments")
	return cmd
}
