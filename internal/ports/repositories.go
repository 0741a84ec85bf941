package ports

import (
	"context"

	"github.com/taskdeck/core/internal/domain/entities"
)

// TaskFilter carries the optional equality filters of a list operation.
// A nil field means "no filter".
type TaskFilter struct {
	Status   *entities.Status
	Priority *entities.Priority
}

// TaskRepository defines the interface for task persistence. Every
// operation is scoped by the (account, user) pair; a task belonging to
// a different pair is indistinguishable from a missing one. Mutating
// operations run inside a single transaction committed on success and
// rolled back on any failure.
type TaskRepository interface {
	// Insert stores a new task and returns it with the generated id and
	// audit timestamps filled in.
	Insert(ctx context.Context, task *entities.Task) (*entities.Task, error)
	// GetByID returns the non-deleted task matching all three keys, or
	// entities.ErrTaskNotFound.
	GetByID(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error)
	// List returns non-deleted tasks for the scope ordered by priority
	// descending, due date ascending (nulls last), creation descending.
	List(ctx context.Context, scope entities.Principal, filter TaskFilter) ([]*entities.Task, error)
	// Update overwrites the mutable fields of the matching non-deleted
	// task and bumps date_modified; entities.ErrTaskNotFound when no row
	// matches the scope and id.
	Update(ctx context.Context, scope entities.Principal, task *entities.Task) (*entities.Task, error)
	// MarkDeleted soft-deletes the matching task. A second call for the
	// same id fails with entities.ErrTaskNotFound.
	MarkDeleted(ctx context.Context, scope entities.Principal, taskID int64) error
}

// DirectoryRepository looks up accounts and users for the tenancy guard
// and for authentication.
type DirectoryRepository interface {
	AccountExists(ctx context.Context, accountID int64) (bool, error)
	UserExists(ctx context.Context, accountID, userID int64) (bool, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateAccount(ctx context.Context, account *entities.Account) error
	CreateUser(ctx context.Context, user *entities.User) error
}
