package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/paperless-mail/internal/i18n"
	"github.com/gravitrone/paperless-mail/internal/paperless"
)

// TaskGetter looks up consumption tasks.
type TaskGetter interface {
	GetTask(ctx context.Context, taskID string) (*paperless.Task, error)
}

// StatusCmd returns the `paperless-mail status` command.
func StatusCmd() *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "status <task-id>...",
		Short: "Show the state of upload tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := NewRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := cmd.Context()
			if wait > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, wait)
				defer cancel()
				return WaitForTasks(ctx, rt.Client, args, pollInterval, rt.Printer, cmd.OutOrStdout())
			}
			for _, id := range args {
				task, err := rt.Client.GetTask(ctx, id)
				if err != nil {
					return fmt.Errorf("get task %s: %w", id, err)
				}
				printTask(cmd.OutOrStdout(), rt.Printer, task)
			}
			return nil
		},
	}
	cmd.Flags().DurationVarP(&wait, "wait", "w", 0, "poll until the tasks finish, up to this long")
	return cmd
}

const pollInterval = 2 * time.Second

// WaitForTasks polls each task until it reaches a terminal state and prints
// the final state. It returns an error if any task failed.
func WaitForTasks(ctx context.Context, tasks TaskGetter, ids []string, interval time.Duration, printer *i18n.Printer, out io.Writer) error {
	failed := 0
	for _, id := range ids {
		task, err := pollTask(ctx, tasks, id, interval)
		if err != nil {
			return err
		}
		printTask(out, printer, task)
		if task.Status != paperless.TaskSuccess {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d tasks did not succeed", failed, len(ids))
	}
	return nil
}

func pollTask(ctx context.Context, tasks TaskGetter, id string, interval time.Duration) (*paperless.Task, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		task, err := tasks.GetTask(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get task %s: %w", id, err)
		}
		if task.Finished() {
			return task, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait for task %s: %w", id, ctx.Err())
		case <-ticker.C:
		}
	}
}

func printTask(out io.Writer, printer *i18n.Printer, task *paperless.Task) {
	fmt.Fprintln(out, printer.Sprintf(i18n.MsgTaskStatus, task.TaskID, task.Status))
	if task.RelatedDocument != nil {
		if id, ok := task.RelatedDocument.Int(); ok {
			fmt.Fprintln(out, "  "+printer.Sprintf(i18n.MsgTaskDocument, strconv.Itoa(id)))
		}
	}
	if task.Result != nil && task.Status == paperless.TaskFailure {
		fmt.Fprintf(out, "  %s\n", *task.Result)
	}
}
