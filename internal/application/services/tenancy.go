package services

import (
	"context"
	"fmt"

	"github.com/taskdeck/core/internal/domain/entities"
	"github.com/taskdeck/core/internal/ports"
)

// TenancyGuard verifies that a referenced account exists and that the
// referenced user exists under that account. Both checks run after the
// validation rules in create, and are the only pre-checks in get, list
// and delete.
type TenancyGuard struct {
	dir ports.DirectoryRepository
}

// NewTenancyGuard creates a new tenancy guard
func NewTenancyGuard(dir ports.DirectoryRepository) *TenancyGuard {
	return &TenancyGuard{dir: dir}
}

// Check fails with ErrAccountNotFound before ErrUserNotFound; the order
// is part of the error-reporting contract.
func (g *TenancyGuard) Check(ctx context.Context, scope entities.Principal) error {
	ok, err := g.dir.AccountExists(ctx, scope.AccountID)
	if err != nil {
		return fmt.Errorf("tenancy check: %w", err)
	}
	if !ok {
		return entities.ErrAccountNotFound
	}

	ok, err = g.dir.UserExists(ctx, scope.AccountID, scope.UserID)
	if err != nil {
		return fmt.Errorf("tenancy check: %w", err)
	}
	if !ok {
		return entities.ErrUserNotFound
	}

	return nil
}
