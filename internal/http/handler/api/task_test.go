package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/bornholm/backlog/internal/adapter/memory"
	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/core/port"
	"github.com/bornholm/backlog/internal/core/service"
	"github.com/pkg/errors"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.TaskStore) {
	t.Helper()

	store := memory.NewTaskStore()
	handler := NewHandler(service.NewTaskManager(store))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return server, store
}

func createTask(t *testing.T, server *httptest.Server, title string) (*http.Response, MutationResponse) {
	t.Helper()

	form := url.Values{}
	form.Set("title", title)

	res, err := http.Post(server.URL+"/tasks", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	var envelope MutationResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return res, envelope
}

func listTasks(t *testing.T, server *httptest.Server, query string) []Task {
	t.Helper()

	res, err := http.Get(server.URL + "/tasks" + query)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("status code: expected %d, got %d", e, g)
	}

	var tasks []Task
	if err := json.NewDecoder(res.Body).Decode(&tasks); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return tasks
}

func doJSON(t *testing.T, method string, url string, body string) (*http.Response, MutationResponse) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer res.Body.Close()

	var envelope MutationResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return res, envelope
}

func TestCreateAndListTasks(t *testing.T) {
	server, _ := newTestServer(t)

	res, envelope := createTask(t, server, "  Buy milk  ")

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if !envelope.IsSuccess {
		t.Fatalf("expected a success envelope, got %+v", envelope)
	}

	tasks := listTasks(t, server, "")

	if e, g := 1, len(tasks); e != g {
		t.Fatalf("len(tasks): expected %d, got %d", e, g)
	}

	if e, g := "Buy milk", tasks[0].Title; e != g {
		t.Errorf("title: expected %q, got %q", e, g)
	}

	if e, g := model.StatusIncomplete, tasks[0].Status; e != g {
		t.Errorf("status: expected %q, got %q", e, g)
	}

	if tasks[0].UpdatedAt != nil {
		t.Errorf("updatedAt should be null before first update")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	server, store := newTestServer(t)

	testCases := []struct {
		name          string
		title         string
		expectMessage string
	}{
		{
			name:          "empty",
			title:         "",
			expectMessage: "task title must be at least 1 character",
		},
		{
			name:          "whitespace only",
			title:         "   ",
			expectMessage: "task title must be at least 1 character",
		},
		{
			name:          "too long",
			title:         strings.Repeat("a", 256),
			expectMessage: "task title must be at most 255 characters",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			res, envelope := createTask(t, server, testCase.title)

			if e, g := http.StatusUnprocessableEntity, res.StatusCode; e != g {
				t.Errorf("status code: expected %d, got %d", e, g)
			}

			if envelope.IsSuccess {
				t.Errorf("expected a failure envelope, got %+v", envelope)
			}

			if e, g := 1, len(envelope.Issues); e != g {
				t.Fatalf("len(issues): expected %d, got %d", e, g)
			}

			if e, g := testCase.expectMessage, envelope.Issues[0].Message; e != g {
				t.Errorf("issue message: expected %q, got %q", e, g)
			}
		})
	}

	total, err := store.CountTasks(context.Background(), nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(0), total; e != g {
		t.Errorf("no row should be inserted, got %d", g)
	}
}

func TestCreateTaskBoundaryLength(t *testing.T) {
	server, _ := newTestServer(t)

	res, envelope := createTask(t, server, strings.Repeat("a", 255))

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if !envelope.IsSuccess {
		t.Errorf("a 255 characters title should be accepted, got %+v", envelope)
	}

	tasks := listTasks(t, server, "")

	if e, g := 1, len(tasks); e != g {
		t.Fatalf("len(tasks): expected %d, got %d", e, g)
	}

	if e, g := 255, len(tasks[0].Title); e != g {
		t.Errorf("len(title): expected %d, got %d", e, g)
	}
}

func TestListTasksOrderingAndFilter(t *testing.T) {
	server, _ := newTestServer(t)

	createTask(t, server, "first")
	createTask(t, server, "second")

	tasks := listTasks(t, server, "")

	if e, g := 2, len(tasks); e != g {
		t.Fatalf("len(tasks): expected %d, got %d", e, g)
	}

	if e, g := "second", tasks[0].Title; e != g {
		t.Errorf("tasks[0].Title: expected %q, got %q", e, g)
	}

	res, envelope := doJSON(t, http.MethodPatch, server.URL+"/tasks/"+tasks[0].ID, `{"status":"complete"}`)
	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Fatalf("status code: expected %d, got %d (%+v)", e, g, envelope)
	}

	completed := listTasks(t, server, "?status=complete")

	if e, g := 1, len(completed); e != g {
		t.Fatalf("len(completed): expected %d, got %d", e, g)
	}

	if e, g := tasks[0].ID, completed[0].ID; e != g {
		t.Errorf("completed[0].ID: expected %q, got %q", e, g)
	}

	invalidRes, err := http.Get(server.URL + "/tasks?status=unknown")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer invalidRes.Body.Close()

	if e, g := http.StatusBadRequest, invalidRes.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	server, _ := newTestServer(t)

	createTask(t, server, "toggle me")

	tasks := listTasks(t, server, "")
	id := tasks[0].ID

	res, envelope := doJSON(t, http.MethodPatch, server.URL+"/tasks/"+id, `{"status":"complete"}`)

	if e, g := http.StatusOK, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if !envelope.IsSuccess {
		t.Fatalf("expected a success envelope, got %+v", envelope)
	}

	if e, g := "task updated", envelope.Message; e != g {
		t.Errorf("message: expected %q, got %q", e, g)
	}

	tasks = listTasks(t, server, "")

	if e, g := model.StatusComplete, tasks[0].Status; e != g {
		t.Errorf("status: expected %q, got %q", e, g)
	}

	if tasks[0].UpdatedAt == nil {
		t.Errorf("updatedAt should be set after an update")
	}

	// Invalid status value never reaches the service
	res, envelope = doJSON(t, http.MethodPatch, server.URL+"/tasks/"+id, `{"status":"done"}`)

	if e, g := http.StatusUnprocessableEntity, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if envelope.IsSuccess {
		t.Errorf("expected a failure envelope, got %+v", envelope)
	}
}

func TestMutateUnknownTask(t *testing.T) {
	server, store := newTestServer(t)

	createTask(t, server, "survivor")

	missing := string(model.NewTaskID())

	res, envelope := doJSON(t, http.MethodDelete, server.URL+"/tasks/"+missing, "")

	if e, g := http.StatusNotFound, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if envelope.IsSuccess {
		t.Fatalf("expected a failure envelope, got %+v", envelope)
	}

	if e, g := "task not found", envelope.Error.Message; e != g {
		t.Errorf("error message: expected %q, got %q", e, g)
	}

	res, envelope = doJSON(t, http.MethodPatch, server.URL+"/tasks/"+missing, `{"status":"complete"}`)

	if e, g := http.StatusNotFound, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if e, g := "task not found", envelope.Error.Message; e != g {
		t.Errorf("error message: expected %q, got %q", e, g)
	}

	total, err := store.CountTasks(context.Background(), nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), total; e != g {
		t.Errorf("store should be untouched: expected %d task, got %d", e, g)
	}
}

func TestListTasksStorageFailure(t *testing.T) {
	handler := NewHandler(service.NewTaskManager(&failingStore{}))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	for _, query := range []string{"", "?status=complete"} {
		res, err := http.Get(server.URL + "/tasks" + query)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		defer res.Body.Close()

		if e, g := http.StatusInternalServerError, res.StatusCode; e != g {
			t.Errorf("status code: expected %d, got %d", e, g)
		}

		var body ErrorResponse
		if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		// The cause stays server-side, only the generic message leaks
		if e, g := "could not fetch tasks", body.Error; e != g {
			t.Errorf("error: expected %q, got %q", e, g)
		}
	}
}

type failingStore struct{}

// CountTasks implements port.TaskStore.
func (s *failingStore) CountTasks(ctx context.Context, status *model.Status) (int64, error) {
	return 0, errors.New("store unavailable")
}

// QueryTasks implements port.TaskStore.
func (s *failingStore) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]model.Task, error) {
	return nil, errors.New("store unavailable")
}

// CreateTask implements port.TaskStore.
func (s *failingStore) CreateTask(ctx context.Context, title string) (model.Task, error) {
	return nil, errors.New("store unavailable")
}

// UpdateTaskStatus implements port.TaskStore.
func (s *failingStore) UpdateTaskStatus(ctx context.Context, id model.TaskID, status model.Status) (model.Task, error) {
	return nil, errors.New("store unavailable")
}

// DeleteTask implements port.TaskStore.
func (s *failingStore) DeleteTask(ctx context.Context, id model.TaskID) error {
	return errors.New("store unavailable")
}

var _ port.TaskStore = &failingStore{}

func TestMutateMalformedTaskID(t *testing.T) {
	server, _ := newTestServer(t)

	res, envelope := doJSON(t, http.MethodDelete, server.URL+"/tasks/not-a-valid-id", "")

	if e, g := http.StatusUnprocessableEntity, res.StatusCode; e != g {
		t.Errorf("status code: expected %d, got %d", e, g)
	}

	if envelope.IsSuccess {
		t.Fatalf("expected a failure envelope, got %+v", envelope)
	}

	if e, g := "invalid task id", envelope.Error.Message; e != g {
		t.Errorf("error message: expected %q, got %q", e, g)
	}
}
