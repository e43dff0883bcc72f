package paperless

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when the server knows no task with the id.
var ErrTaskNotFound = errors.New("task not found")

// GetTask fetches the consumption task created by PostDocument.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	data, err := c.get(ctx, buildQuery("/api/tasks/", QueryParams{"task_id": taskID}))
	if err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("%s: %w", taskID, ErrTaskNotFound)
	}
	return &tasks[0], nil
}
