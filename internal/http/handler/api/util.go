package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type MutationResponse struct {
	IsSuccess bool           `json:"isSuccess"`
	Message   string         `json:"message,omitempty"`
	Error     *MutationError `json:"error,omitempty"`
	Issues    []Issue        `json:"issues,omitempty"`
}

type MutationError struct {
	Message string `json:"message"`
}

type Issue struct {
	Path    []string `json:"path"`
	Message string   `json:"message"`
}

func newSuccess(message string) MutationResponse {
	return MutationResponse{
		IsSuccess: true,
		Message:   message,
	}
}

func newFailure(message string) MutationResponse {
	return MutationResponse{
		IsSuccess: false,
		Error: &MutationError{
			Message: message,
		},
	}
}

func newInvalidInput(issues []Issue) MutationResponse {
	res := newFailure(issues[0].Message)
	res.Issues = issues

	return res
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(payload); err != nil {
		slog.ErrorContext(ctx, "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}
