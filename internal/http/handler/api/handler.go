package api

import (
	"net/http"

	"github.com/bornholm/backlog/internal/core/service"
)

type Handler struct {
	taskManager *service.TaskManager
	mux         *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(taskManager *service.TaskManager) *Handler {
	h := &Handler{
		taskManager: taskManager,
		mux:         &http.ServeMux{},
	}

	h.mux.Handle("GET /tasks", http.HandlerFunc(h.listTasks))
	h.mux.Handle("POST /tasks", http.HandlerFunc(h.createTask))
	h.mux.Handle("PATCH /tasks/{taskID}", http.HandlerFunc(h.updateTaskStatus))
	h.mux.Handle("DELETE /tasks/{taskID}", http.HandlerFunc(h.deleteTask))

	return h
}

var _ http.Handler = &Handler{}
