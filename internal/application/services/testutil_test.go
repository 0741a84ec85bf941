package services_test

import (
	"context"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/ports"
)

// ---------------------------------------------------------------------------
// Mock TaskRepository
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	insertFunc      func(ctx context.Context, task *entities.Task) (*entities.Task, error)
	getByIDFunc     func(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error)
	listFunc        func(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error)
	updateFunc      func(ctx context.Context, scope entities.Principal, task *entities.Task) (*entities.Task, error)
	markDeletedFunc func(ctx context.Context, scope entities.Principal, taskID int64) error
}

func (m *mockTaskRepo) Insert(ctx context.Context, task *entities.Task) (*entities.Task, error) {
	return m.insertFunc(ctx, task)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, scope entities.Principal, taskID int64) (*entities.Task, error) {
	return m.getByIDFunc(ctx, scope, taskID)
}

func (m *mockTaskRepo) List(ctx context.Context, scope entities.Principal, filter ports.TaskFilter) ([]*entities.Task, error) {
	return m.listFunc(ctx, scope, filter)
}

func (m *mockTaskRepo) Update(ctx context.Context, scope entities.Principal, task *entities.Task) (*entities.Task, error) {
	return m.updateFunc(ctx, scope, task)
}

func (m *mockTaskRepo) MarkDeleted(ctx context.Context, scope entities.Principal, taskID int64) error {
	return m.markDeletedFunc(ctx, scope, taskID)
}

// ---------------------------------------------------------------------------
// Mock DirectoryRepository
// ---------------------------------------------------------------------------

type mockDirRepo struct {
	accountExistsFunc  func(ctx context.Context, accountID int64) (bool, error)
	userExistsFunc     func(ctx context.Context, accountID, userID int64) (bool, error)
	getUserByEmailFunc func(ctx context.Context, email string) (*entities.User, error)
	createAccountFunc  func(ctx context.Context, account *entities.Account) error
	createUserFunc     func(ctx context.Context, user *entities.User) error
}

func (m *mockDirRepo) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	return m.accountExistsFunc(ctx, accountID)
}

func (m *mockDirRepo) UserExists(ctx context.Context, accountID, userID int64) (bool, error) {
	return m.userExistsFunc(ctx, accountID, userID)
}

func (m *mockDirRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return m.getUserByEmailFunc(ctx, email)
}

func (m *mockDirRepo) CreateAccount(ctx context.Context, account *entities.Account) error {
	return m.createAccountFunc(ctx, account)
}

func (m *mockDirRepo) CreateUser(ctx context.Context, user *entities.User) error {
	return m.createUserFunc(ctx, user)
}

// okDirRepo returns a directory whose account and user checks both pass.
func okDirRepo() *mockDirRepo {
	return &mockDirRepo{
		accountExistsFunc: func(context.Context, int64) (bool, error) { return true, nil },
		userExistsFunc:    func(context.Context, int64, int64) (bool, error) { return true, nil },
	}
}
