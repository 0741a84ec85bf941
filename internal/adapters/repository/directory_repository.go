package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/infrastructure/database"
	"github.com/taskdeck/core/internal/ports"
)

// DirectoryRepositoryImpl implements ports.DirectoryRepository on
// Postgres. It backs the tenancy guard and authentication.
type DirectoryRepositoryImpl struct {
	db *database.DB
}

// NewDirectoryRepository creates a new directory repository
func NewDirectoryRepository(db *database.DB) ports.DirectoryRepository {
	return &DirectoryRepositoryImpl{db: db}
}

func (r *DirectoryRepositoryImpl) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE id_account = $1)`

	var exists bool
	if err := r.db.DB.GetContext(ctx, &exists, query, accountID); err != nil {
		return false, fmt.Errorf("account exists: %w", err)
	}

	return exists, nil
}

func (r *DirectoryRepositoryImpl) UserExists(ctx context.Context, accountID, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id_user = $1 AND id_account = $2)`

	var exists bool
	if err := r.db.DB.GetContext(ctx, &exists, query, userID, accountID); err != nil {
		return false, fmt.Errorf("user exists: %w", err)
	}

	return exists, nil
}

func (r *DirectoryRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id_user, id_account, email, password_hash, date_created
		FROM users
		WHERE email = $1`

	var user entities.User
	err := r.db.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *DirectoryRepositoryImpl) CreateAccount(ctx context.Context, account *entities.Account) error {
	query := `
		INSERT INTO accounts (name)
		VALUES ($1)
		RETURNING id_account, date_created`

	err := r.db.DB.QueryRowxContext(ctx, query, account.Name).
		Scan(&account.ID, &account.DateCreated)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

func (r *DirectoryRepositoryImpl) CreateUser(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id_account, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id_user, date_created`

	err := r.db.DB.QueryRowxContext(ctx, query, user.AccountID, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.DateCreated)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}
