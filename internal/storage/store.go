// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/jewelmj/splitsmart/internal/models"
)

// Store defines the interface for SplitSmart's persistence operations.
// This abstraction allows swapping storage backends (SQLite for the
// server, a JSON snapshot file for the terminal client) without changing
// the service layer.
//
// Expense and settlement histories are append-only: there are no update
// or delete operations for ledger records, and list operations return
// records in insertion order.
type Store interface {
	// CreateUser persists a new user. The user's ID and CreatedAt are
	// populated by the store when unset. Returns ErrDuplicate when a user
	// with the same email already exists.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns ErrNotFound when absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByEmail retrieves a user by email. Returns ErrNotFound when absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsers retrieves all users.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateGroup persists a new group. ID and CreatedAt are populated
	// by the store when unset.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by ID. Returns ErrNotFound when absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups retrieves all groups.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMembers adds user IDs to a group, skipping existing members.
	AddGroupMembers(ctx context.Context, groupID string, memberIDs []string) error

	// CreateExpense appends an expense to its group's ledger. ID and
	// CreatedAt are populated by the store when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// ListExpensesByGroup retrieves a group's expenses in record order.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// CreateSettlement appends a settlement to its group's history. ID
	// and CreatedAt are populated by the store when unset.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves a group's settlements in record order.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
