package sqlite

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/split"
)

func TestSQLiteStore(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "splitsmart-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}

	t.Run("CreateUser generates ID and rejects duplicate email", func(t *testing.T) {
		if err := store.CreateUser(ctx, alice); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if alice.ID == "" {
			t.Error("Expected user ID to be generated")
		}
		if alice.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if err := store.CreateUser(ctx, bob); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		dup := &models.User{Name: "Alice Again", Email: "alice@example.com"}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, apperrors.ErrDuplicate) {
			t.Errorf("duplicate email error = %v, want ErrDuplicate", err)
		}
	})

	t.Run("GetUser and GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUser(ctx, alice.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Email != alice.Email {
			t.Errorf("Email mismatch: got %s, want %s", got.Email, alice.Email)
		}

		got, err = store.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != bob.ID {
			t.Errorf("ID mismatch: got %s, want %s", got.ID, bob.ID)
		}

		if _, err := store.GetUser(ctx, "missing"); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("missing user error = %v, want ErrNotFound", err)
		}
	})

	group := &models.Group{Name: "Roommates", MemberIDs: []string{}}

	t.Run("CreateGroup and AddGroupMembers", func(t *testing.T) {
		group.MemberIDs = []string{alice.ID}
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
		if group.ID == "" {
			t.Error("Expected group ID to be generated")
		}

		// Adding bob twice must not duplicate the membership.
		if err := store.AddGroupMembers(ctx, group.ID, []string{bob.ID, bob.ID}); err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}

		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.MemberIDs) != 2 {
			t.Errorf("Members count mismatch: got %d, want 2", len(got.MemberIDs))
		}
	})

	t.Run("CreateExpense round-trips shares and split spec", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Dinner",
			Amount:      60,
			PayerID:     alice.ID,
			Split:       split.Percentage(map[string]float64{alice.ID: 50, bob.ID: 50}),
			Shares:      map[string]float64{alice.ID: 30, bob.ID: 30},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}

		expenses, err := store.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("Expenses count mismatch: got %d, want 1", len(expenses))
		}
		got := expenses[0]
		if got.Description != "Dinner" || got.PayerID != alice.ID {
			t.Errorf("Expense fields mismatch: %+v", got)
		}
		if got.Split.Type != split.TypePercentage {
			t.Errorf("Split type mismatch: got %s, want %s", got.Split.Type, split.TypePercentage)
		}
		if math.Abs(got.Split.Percentages[bob.ID]-50) > 0.001 {
			t.Errorf("Split percentages mismatch: %v", got.Split.Percentages)
		}
		if math.Abs(got.Shares[bob.ID]-30) > 0.001 {
			t.Errorf("Shares mismatch: %v", got.Shares)
		}
	})

	t.Run("CreateSettlement preserves record order", func(t *testing.T) {
		first := &models.Settlement{
			GroupID: group.ID, PayerID: bob.ID, RecipientID: alice.ID, Amount: 10, Note: "first",
		}
		second := &models.Settlement{
			GroupID: group.ID, PayerID: bob.ID, RecipientID: alice.ID, Amount: 20,
		}
		if err := store.CreateSettlement(ctx, first); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
		if err := store.CreateSettlement(ctx, second); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		settlements, err := store.ListSettlementsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByGroup failed: %v", err)
		}
		if len(settlements) != 2 {
			t.Fatalf("Settlements count mismatch: got %d, want 2", len(settlements))
		}
		if settlements[0].Note != "first" || settlements[1].Amount != 20 {
			t.Errorf("Settlement order mismatch: %+v", settlements)
		}
	})
}
