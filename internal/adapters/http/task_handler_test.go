package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpHandlers "github.com/taskdeck/core/internal/adapters/http"
	"github.com/taskdeck/core/internal/application/services"
	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/logger"
	"github.com/taskdeck/core/internal/ports"
)

var testScope = entities.Principal{AccountID: 7, UserID: 42}

// ---------------------------------------------------------------------------
// Mock TaskService
// ---------------------------------------------------------------------------

type mockTaskService struct {
	createFunc func(ctx context.Context, scope entities.Principal, req ports.CreateTaskRequest) (*entities.Task, error)
	getFunc    func(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error)
	listFunc   func(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error)
	updateFunc func(ctx context.Context, scope entities.Principal, taskID int64, req ports.UpdateTaskRequest) (*entities.Task, error)
	deleteFunc func(ctx context.Context, scope entities.Principal, taskID int64) error
}

func (m *mockTaskService) CreateTask(ctx context.Context, scope entities.Principal, req ports.CreateTaskRequest) (*entities.Task, error) {
	return m.createFunc(ctx, scope, req)
}

func (m *mockTaskService) GetTask(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error) {
	return m.getFunc(ctx, scope, taskID)
}

func (m *mockTaskService) ListTasks(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error) {
	return m.listFunc(ctx, scope, filter)
}

func (m *mockTaskService) UpdateTask(ctx context.Context, scope entities.Principal, taskID int64, req ports.UpdateTaskRequest) (*entities.Task, error) {
	return m.updateFunc(ctx, scope, taskID, req)
}

func (m *mockTaskService) DeleteTask(ctx context.Context, scope entities.Principal, taskID int64) error {
	return m.deleteFunc(ctx, scope, taskID)
}

// newContext builds an echo context carrying the test principal.
func newContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(httpHandlers.PrincipalContextKey, testScope)
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpHandlers.Envelope {
	t.Helper()

	var env httpHandlers.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NotEmpty(t, env.Timestamp)
	return env
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()

		svc := &mockTaskService{
			createFunc: func(_ context.Context, scope entities.Principal, req ports.CreateTaskRequest) (*entities.Task, error) {
				assert.Equal(t, testScope, scope)
				assert.Equal(t, "Buy milk", req.Title)
				require.NotNil(t, req.Priority)
				assert.Equal(t, 2, *req.Priority)
				return &entities.Task{ID: 101, Title: req.Title, Priority: entities.PriorityHigh}, nil
			},
		}
		h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

		c, rec := newContext(t, http.MethodPost, "/api/v1/task", `{"title":"Buy milk","priority":2}`)
		require.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Nil(t, env.Error)
	})

	t.Run("validation_error_envelope", func(t *testing.T) {
		t.Parallel()

		svc := &mockTaskService{
			createFunc: func(context.Context, entities.Principal, ports.CreateTaskRequest) (*entities.Task, error) {
				return nil, &services.ClientError{HTTPStatus: http.StatusBadRequest, Code: "TitleTooShort", Message: "title must be at least 3 characters"}
			},
		}
		h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

		c, rec := newContext(t, http.MethodPost, "/api/v1/task", `{"title":"ab"}`)
		require.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		require.NotNil(t, env.Error)
		assert.Equal(t, "TitleTooShort", env.Error.Code)
	})

	t.Run("malformed_body", func(t *testing.T) {
		t.Parallel()

		h := httpHandlers.NewTaskHandler(&mockTaskService{}, logger.NewNop())

		c, rec := newContext(t, http.MethodPost, "/api/v1/task", `{"title":`)
		require.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		require.NotNil(t, env.Error)
		assert.Equal(t, "InvalidRequest", env.Error.Code)
	})
}

func TestTaskHandler_GetTask(t *testing.T) {
	t.Parallel()

	t.Run("not_found_envelope", func(t *testing.T) {
		t.Parallel()

		svc := &mockTaskService{
			getFunc: func(context.Context, entities.Principal, int64) (*entities.Task, error) {
				return nil, &services.ClientError{HTTPStatus: http.StatusNotFound, Code: "TaskDoesNotExist", Message: "task does not exist"}
			},
		}
		h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

		c, rec := newContext(t, http.MethodGet, "/api/v1/task/99", "")
		c.SetParamNames("id")
		c.SetParamValues("99")
		require.NoError(t, h.GetTask(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "TaskDoesNotExist", env.Error.Code)
	})

	t.Run("non_numeric_id", func(t *testing.T) {
		t.Parallel()

		h := httpHandlers.NewTaskHandler(&mockTaskService{}, logger.NewNop())

		c, rec := newContext(t, http.MethodGet, "/api/v1/task/abc", "")
		c.SetParamNames("id")
		c.SetParamValues("abc")
		require.NoError(t, h.GetTask(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	t.Parallel()

	t.Run("parses_filters", func(t *testing.T) {
		t.Parallel()

		svc := &mockTaskService{
			listFunc: func(_ context.Context, _ entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error) {
				require.NotNil(t, filter.Status)
				assert.Equal(t, entities.StatusInProgress, *filter.Status)
				require.NotNil(t, filter.Priority)
				assert.Equal(t, entities.PriorityHigh, *filter.Priority)
				return []*entities.Task{}, nil
			},
		}
		h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

		c, rec := newContext(t, http.MethodGet, "/api/v1/task?status=1&priority=2", "")
		require.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects_non_numeric_filter", func(t *testing.T) {
		t.Parallel()

		h := httpHandlers.NewTaskHandler(&mockTaskService{}, logger.NewNop())

		c, rec := newContext(t, http.MethodGet, "/api/v1/task?status=urgent", "")
		require.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects_out_of_range_filter", func(t *testing.T) {
		t.Parallel()

		for _, target := range []string{
			"/api/v1/task?status=9",
			"/api/v1/task?status=-1",
			"/api/v1/task?priority=3",
			"/api/v1/task?priority=-2",
		} {
			svc := &mockTaskService{
				listFunc: func(context.Context, entities.Principal, ports.TaskFilter) ([]*entities.Task, error) {
					t.Fatalf("service must not be called for %s", target)
					return nil, nil
				},
			}
			h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

			c, rec := newContext(t, http.MethodGet, target, "")
			require.NoError(t, h.ListTasks(c))

			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, "InvalidRequest", env.Error.Code)
		}
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Parallel()

	svc := &mockTaskService{
		deleteFunc: func(_ context.Context, scope entities.Principal, taskID int64) error {
			assert.Equal(t, testScope, scope)
			assert.Equal(t, int64(5), taskID)
			return nil
		},
	}
	h := httpHandlers.NewTaskHandler(svc, logger.NewNop())

	c, rec := newContext(t, http.MethodDelete, "/api/v1/task/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")
	require.NoError(t, h.DeleteTask(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestTaskHandler_MissingPrincipal(t *testing.T) {
	t.Parallel()

	h := httpHandlers.NewTaskHandler(&mockTaskService{}, logger.NewNop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/task", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListTasks(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
