package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/http/handler/api"
	"github.com/pkg/errors"
)

type ListTasksOptions struct {
	Status *model.Status
}

type ListTasksOptionFunc func(opts *ListTasksOptions)

func WithListTasksStatus(status model.Status) ListTasksOptionFunc {
	return func(opts *ListTasksOptions) {
		opts.Status = &status
	}
}

func NewListTasksOptions(funcs ...ListTasksOptionFunc) *ListTasksOptions {
	opts := &ListTasksOptions{}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func (c *Client) ListTasks(ctx context.Context, funcs ...ListTasksOptionFunc) ([]api.Task, error) {
	opts := NewListTasksOptions(funcs...)

	endpoint := "/tasks"
	if opts.Status != nil {
		query := url.Values{}
		query.Set("status", string(*opts.Status))
		endpoint += "?" + query.Encode()
	}

	var tasks []api.Task
	if err := c.jsonRequest(ctx, "GET", endpoint, nil, nil, &tasks); err != nil {
		return nil, errors.WithStack(err)
	}

	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title string) error {
	form := url.Values{}
	form.Set("title", title)

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.mutationRequest(ctx, "POST", "/tasks", header, strings.NewReader(form.Encode())); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status model.Status) error {
	body, err := json.Marshal(api.UpdateTaskStatusRequest{Status: status})
	if err != nil {
		return errors.WithStack(err)
	}

	header := http.Header{}
	header.Set("Content-Type", "application/json")

	if err := c.mutationRequest(ctx, "PATCH", "/tasks/"+id, header, bytes.NewReader(body)); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.mutationRequest(ctx, "DELETE", "/tasks/"+id, nil, nil); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
