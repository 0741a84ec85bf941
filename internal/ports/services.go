package ports

import (
	"context"
	"time"

	"github.com/taskdeck/core/internal/domain/entities"
)

// TaskService interface for task management operations. The Principal
// is resolved by the auth layer and passed explicitly; the service never
// derives the caller from ambient state.
type TaskService interface {
	CreateTask(ctx context.Context, scope entities.Principal, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error)
	ListTasks(ctx context.Context, scope entities.Principal, filter TaskFilter) ([]*entities.Task, error)
	UpdateTask(ctx context.Context, scope entities.Principal, taskID int64, req UpdateTaskRequest) (*entities.Task, error)
	DeleteTask(ctx context.Context, scope entities.Principal, taskID int64) error
}

// AuthService interface for authentication operations.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*entities.Principal, error)
}

// CreateTaskRequest carries the caller-supplied fields of a create.
// Priority defaults to medium when omitted; status is always forced to
// pending on create and is therefore not accepted.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    *int       `json:"priority"`
}

// UpdateTaskRequest carries the full mutable field set of an update.
// Tenancy fields and the creation timestamp are never accepted.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    int        `json:"priority"`
	Status      int        `json:"status"`
}

// LoginRequest authenticates a user by email and password.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the issued access token and its expiry.
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	AccountID   int64     `json:"idAccount"`
	UserID      int64     `json:"idUser"`
}
