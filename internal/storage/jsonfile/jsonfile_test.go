package jsonfile

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/split"
)

func TestJSONFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	ctx := context.Background()

	store, err := New(path)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}

	alice := &models.User{Name: "Alice", Email: "alice@example.com"}
	bob := &models.User{Name: "Bob", Email: "bob@example.com"}

	t.Run("CreateUser rejects duplicate email", func(t *testing.T) {
		if err := store.CreateUser(ctx, alice); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if err := store.CreateUser(ctx, bob); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		dup := &models.User{Name: "Other Alice", Email: "alice@example.com"}
		if err := store.CreateUser(ctx, dup); !errors.Is(err, apperrors.ErrDuplicate) {
			t.Errorf("duplicate email error = %v, want ErrDuplicate", err)
		}
	})

	group := &models.Group{Name: "Trip", MemberIDs: []string{alice.ID}}

	t.Run("Group membership is deduplicated", func(t *testing.T) {
		if err := store.CreateGroup(ctx, group); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}
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

		if err := store.AddGroupMembers(ctx, "missing", []string{bob.ID}); !errors.Is(err, apperrors.ErrNotFound) {
			t.Errorf("missing group error = %v, want ErrNotFound", err)
		}
	})

	t.Run("Data survives reopen", func(t *testing.T) {
		expense := &models.Expense{
			GroupID:     group.ID,
			Description: "Hotel",
			Amount:      200,
			PayerID:     alice.ID,
			Split:       split.Equal(),
			Shares:      map[string]float64{alice.ID: 100, bob.ID: 100},
		}
		if err := store.CreateExpense(ctx, expense); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		settlement := &models.Settlement{
			GroupID: group.ID, PayerID: bob.ID, RecipientID: alice.ID, Amount: 40,
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		reopened, err := New(path)
		if err != nil {
			t.Fatalf("Failed to reopen store: %v", err)
		}

		user, err := reopened.GetUserByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail after reopen failed: %v", err)
		}
		if user.ID != bob.ID {
			t.Errorf("User ID mismatch after reopen: got %s, want %s", user.ID, bob.ID)
		}

		expenses, err := reopened.ListExpensesByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListExpensesByGroup after reopen failed: %v", err)
		}
		if len(expenses) != 1 {
			t.Fatalf("Expenses count mismatch: got %d, want 1", len(expenses))
		}
		if expenses[0].Split.Type != split.TypeEqual {
			t.Errorf("Split type mismatch: got %s, want %s", expenses[0].Split.Type, split.TypeEqual)
		}
		if math.Abs(expenses[0].Shares[bob.ID]-100) > 0.001 {
			t.Errorf("Shares mismatch after reopen: %v", expenses[0].Shares)
		}

		settlements, err := reopened.ListSettlementsByGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("ListSettlementsByGroup after reopen failed: %v", err)
		}
		if len(settlements) != 1 || math.Abs(settlements[0].Amount-40) > 0.001 {
			t.Errorf("Settlements mismatch after reopen: %+v", settlements)
		}
	})

	t.Run("Missing file starts empty", func(t *testing.T) {
		empty, err := New(filepath.Join(t.TempDir(), "nope.json"))
		if err != nil {
			t.Fatalf("Failed to open empty store: %v", err)
		}
		users, err := empty.ListUsers(ctx)
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(users) != 0 {
			t.Errorf("Expected empty store, got %d users", len(users))
		}
	})
}
