// Package jsonfile provides a single-file JSON implementation of the
// storage.Store interface. It is the persistence mode of the terminal
// client: the whole dataset is loaded at open and the file is rewritten
// after every mutation, so the snapshot on disk is always complete.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// snapshot is the on-disk shape of the whole dataset.
type snapshot struct {
	Users       []*models.User       `json:"users"`
	Groups      []*models.Group      `json:"groups"`
	Expenses    []*models.Expense    `json:"expenses"`
	Settlements []*models.Settlement `json:"settlements"`
}

// Store implements storage.Store over one JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	data snapshot
}

// New opens (or creates) the store at path. A missing file starts empty;
// the file is created on the first mutation.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", path, err)
	}
	return s, nil
}

// Close is a no-op: every mutation already flushed to disk.
func (s *Store) Close() error {
	return nil
}

// save rewrites the snapshot atomically (temp file + rename).
// Callers must hold s.mu.
func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// CreateUser persists a new user, rejecting duplicate emails.
func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.data.Users {
		if existing.Email == user.Email {
			return fmt.Errorf("user with email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}
	s.data.Users = append(s.data.Users, user)
	return s.save()
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.data.Users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
}

// GetUserByEmail retrieves a user by email.
func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.data.Users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
}

// ListUsers retrieves all users in registration order.
func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.User(nil), s.data.Users...), nil
}

// CreateGroup persists a new group.
func (s *Store) CreateGroup(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}
	s.data.Groups = append(s.data.Groups, group)
	return s.save()
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findGroup(groupID)
}

// findGroup looks up a group. Callers must hold s.mu.
func (s *Store) findGroup(groupID string) (*models.Group, error) {
	for _, group := range s.data.Groups {
		if group.ID == groupID {
			return group, nil
		}
	}
	return nil, fmt.Errorf("group %s: %w", groupID, apperrors.ErrNotFound)
}

// ListGroups retrieves all groups in creation order.
func (s *Store) ListGroups(_ context.Context) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Group(nil), s.data.Groups...), nil
}

// AddGroupMembers adds user IDs to a group, skipping existing members.
func (s *Store) AddGroupMembers(_ context.Context, groupID string, memberIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, err := s.findGroup(groupID)
	if err != nil {
		return err
	}
	for _, id := range memberIDs {
		if !group.HasMember(id) {
			group.MemberIDs = append(group.MemberIDs, id)
		}
	}
	return s.save()
}

// CreateExpense appends an expense to its group's ledger.
func (s *Store) CreateExpense(_ context.Context, expense *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	s.data.Expenses = append(s.data.Expenses, expense)
	return s.save()
}

// ListExpensesByGroup retrieves a group's expenses in record order.
func (s *Store) ListExpensesByGroup(_ context.Context, groupID string) ([]*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expenses []*models.Expense
	for _, expense := range s.data.Expenses {
		if expense.GroupID == groupID {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

// CreateSettlement appends a settlement to its group's history.
func (s *Store) CreateSettlement(_ context.Context, settlement *models.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	s.data.Settlements = append(s.data.Settlements, settlement)
	return s.save()
}

// ListSettlementsByGroup retrieves a group's settlements in record order.
func (s *Store) ListSettlementsByGroup(_ context.Context, groupID string) ([]*models.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settlements []*models.Settlement
	for _, settlement := range s.data.Settlements {
		if settlement.GroupID == groupID {
			settlements = append(settlements, settlement)
		}
	}
	return settlements, nil
}
