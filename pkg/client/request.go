package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bornholm/backlog/internal/http/handler/api"
	"github.com/pkg/errors"
)

func (c *Client) request(ctx context.Context, method string, path string, header http.Header, body io.Reader, result io.Writer) (int, error) {
	url, err := url.Parse(path)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	url.Scheme = c.baseURL.Scheme
	url.Host = c.baseURL.Host
	url.User = c.baseURL.User
	rawQuery := url.RawQuery
	url.Path = c.baseURL.JoinPath("/api/v1", url.Path).Path
	url.RawQuery = rawQuery

	slog.DebugContext(ctx, "new client request",
		slog.String("method", method),
		slog.String("path", url.Path),
		slog.String("host", url.Host),
	)

	req, err := http.NewRequestWithContext(ctx, method, url.String(), body)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	if header != nil {
		for k, v := range header {
			req.Header[k] = v
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	defer res.Body.Close()

	if _, err := io.Copy(result, res.Body); err != nil {
		return res.StatusCode, errors.WithStack(err)
	}

	return res.StatusCode, nil
}

func (c *Client) jsonRequest(ctx context.Context, method string, path string, header http.Header, body io.Reader, result any) error {
	var buff bytes.Buffer

	status, err := c.request(ctx, method, path, header, body, &buff)
	if err != nil {
		return errors.WithStack(err)
	}

	if status < http.StatusOK || status >= http.StatusBadRequest {
		return errors.Errorf("unexpected response code %d (%s)", status, http.StatusText(status))
	}

	if err := json.Unmarshal(buff.Bytes(), result); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// mutationRequest decodes the uniform mutation envelope whatever the
// response code, translating failed envelopes into a ResponseError.
func (c *Client) mutationRequest(ctx context.Context, method string, path string, header http.Header, body io.Reader) error {
	var buff bytes.Buffer

	status, err := c.request(ctx, method, path, header, body, &buff)
	if err != nil {
		return errors.WithStack(err)
	}

	var res api.MutationResponse
	if err := json.Unmarshal(buff.Bytes(), &res); err != nil {
		return errors.Errorf("unexpected response code %d (%s)", status, http.StatusText(status))
	}

	if !res.IsSuccess {
		message := http.StatusText(status)
		if res.Error != nil {
			message = res.Error.Message
		}

		return errors.WithStack(&ResponseError{
			StatusCode: status,
			Message:    message,
			Issues:     res.Issues,
		})
	}

	return nil
}

type ResponseError struct {
	StatusCode int
	Message    string
	Issues     []api.Issue
}

func (e *ResponseError) Error() string {
	return e.Message
}

var _ error = &ResponseError{}
