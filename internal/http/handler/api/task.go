package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/core/service"
	"github.com/bornholm/backlog/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

type Task struct {
	ID        string       `json:"id"`
	Title     string       `json:"title"`
	Status    model.Status `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt *time.Time   `json:"updatedAt"`
}

func fromTask(t model.Task) Task {
	return Task{
		ID:        string(t.ID()),
		Title:     t.Title(),
		Status:    t.Status(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	metrics.TotalListRequests.Inc()

	ctx := r.Context()

	var (
		tasks []model.Task
		err   error
	)

	if rawStatus := r.URL.Query().Get("status"); rawStatus != "" {
		status := model.Status(rawStatus)
		if !status.IsValid() {
			writeJSON(ctx, w, http.StatusBadRequest, ErrorResponse{Error: messageInvalidStatus})
			return
		}

		tasks, err = h.taskManager.GetTasksByStatus(ctx, status)
	} else {
		tasks, err = h.taskManager.GetAllTasks(ctx)
	}

	if err != nil {
		slog.ErrorContext(ctx, "could not list tasks", slogx.Error(errors.WithStack(err)))
		writeJSON(ctx, w, http.StatusInternalServerError, ErrorResponse{Error: "could not fetch tasks"})
		return
	}

	res := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, fromTask(t))
	}

	writeJSON(ctx, w, http.StatusOK, res)
}

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	metrics.TotalCreateRequests.Inc()

	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		writeJSON(ctx, w, http.StatusBadRequest, newFailure("could not parse form"))
		return
	}

	title := r.PostFormValue("title")

	if issues := validateTitle(title); len(issues) > 0 {
		writeJSON(ctx, w, http.StatusUnprocessableEntity, newInvalidInput(issues))
		return
	}

	if err := h.taskManager.CreateTask(ctx, title); err != nil {
		h.replyMutationError(ctx, w, "could not create task", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newSuccess("task created"))
}

type UpdateTaskStatusRequest struct {
	Status model.Status `json:"status"`
}

func (h *Handler) updateTaskStatus(w http.ResponseWriter, r *http.Request) {
	metrics.TotalUpdateRequests.Inc()

	ctx := r.Context()

	id, issues := validateTaskID(r.PathValue("taskID"))

	var req UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		issues = append(issues, Issue{Path: []string{"status"}, Message: messageInvalidStatus})
	} else {
		issues = append(issues, validateStatus(req.Status)...)
	}

	if len(issues) > 0 {
		writeJSON(ctx, w, http.StatusUnprocessableEntity, newInvalidInput(issues))
		return
	}

	if _, err := h.taskManager.UpdateTaskStatus(ctx, id, req.Status); err != nil {
		h.replyMutationError(ctx, w, "could not update task status", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newSuccess("task updated"))
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	metrics.TotalDeleteRequests.Inc()

	ctx := r.Context()

	id, issues := validateTaskID(r.PathValue("taskID"))
	if len(issues) > 0 {
		writeJSON(ctx, w, http.StatusUnprocessableEntity, newInvalidInput(issues))
		return
	}

	if err := h.taskManager.DeleteTask(ctx, id); err != nil {
		h.replyMutationError(ctx, w, "could not delete task", err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, newSuccess("task deleted"))
}

func (h *Handler) replyMutationError(ctx context.Context, w http.ResponseWriter, fallback string, err error) {
	status := http.StatusInternalServerError
	message := fallback

	var serviceErr *service.Error
	if errors.As(err, &serviceErr) {
		message = serviceErr.Error()
		if serviceErr.Kind() == service.ErrorKindNotFound {
			status = http.StatusNotFound
		}
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(ctx, message, slogx.Error(errors.WithStack(err)))
	}

	writeJSON(ctx, w, status, newFailure(message))
}
