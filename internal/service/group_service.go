package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/ledger"
	"github.com/jewelmj/splitsmart/internal/models"
	"github.com/jewelmj/splitsmart/internal/split"
	"github.com/jewelmj/splitsmart/internal/storage"
)

// groupState is the in-memory debt state of one group. Its mutex
// serializes every ledger mutation and recompute for that group: the
// tracker itself is single-threaded and a recompute must be atomic with
// respect to interleaved settlement appends.
type groupState struct {
	mu       sync.Mutex
	tracker  *ledger.Tracker
	hydrated bool
}

// Summary is a presentation-ready overview of a group's debt situation.
type Summary struct {
	GroupID       string     `json:"group_id"`
	GroupName     string     `json:"group_name"`
	MemberCount   int        `json:"member_count"`
	ExpenseCount  int        `json:"expense_count"`
	TotalExpenses float64    `json:"total_expenses"`
	Debts         []DebtLine `json:"debts"`
}

// DebtLine is one simplified transfer with display names resolved.
type DebtLine struct {
	BorrowerID   string  `json:"borrower_id"`
	BorrowerName string  `json:"borrower_name"`
	LenderID     string  `json:"lender_id"`
	LenderName   string  `json:"lender_name"`
	Amount       float64 `json:"amount"`
}

// GroupService manages groups, their expense ledgers and their debt
// trackers. It keeps one tracker per group, hydrated lazily from the
// store's settlement history.
type GroupService struct {
	store storage.Store

	mu     sync.Mutex
	groups map[string]*groupState
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{
		store:  store,
		groups: make(map[string]*groupState),
	}
}

// CreateGroup creates a new group. Every member must be a registered user.
func (s *GroupService) CreateGroup(ctx context.Context, name string, memberIDs []string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("group name is required: %w", apperrors.ErrValidation)
	}
	if err := s.checkRegistered(ctx, memberIDs); err != nil {
		return nil, err
	}

	group := &models.Group{Name: name, MemberIDs: dedupe(memberIDs)}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	slog.Info("group created", "group_id", group.ID, "name", group.Name, "members", len(group.MemberIDs))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMembers adds registered users to a group and refreshes the group's
// debts, since a changed member set changes which ledger records count.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, memberIDs []string) (*models.Group, error) {
	if err := s.checkRegistered(ctx, memberIDs); err != nil {
		return nil, err
	}

	state := s.state(groupID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.store.AddGroupMembers(ctx, groupID, dedupe(memberIDs)); err != nil {
		return nil, err
	}
	if err := s.recomputeLocked(ctx, state, groupID); err != nil {
		return nil, err
	}

	slog.Info("group members added", "group_id", groupID, "added", len(memberIDs))
	return s.store.GetGroup(ctx, groupID)
}

// AddExpense validates and records a shared expense, then recomputes the
// group's simplified debts. A rejected expense never reaches the ledger.
func (s *GroupService) AddExpense(ctx context.Context, groupID, description string, amount float64, payerID string, spec split.Spec) (*models.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("expense description is required: %w", apperrors.ErrValidation)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("expense amount %.2f: %w", amount, apperrors.ErrInvalidAmount)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(payerID) {
		return nil, fmt.Errorf("payer %s is not a member of group %s: %w", payerID, groupID, apperrors.ErrValidation)
	}

	// The strategy validates before the expense is admitted; the ledger
	// trusts that admitted shares sum to the amount.
	shares, err := spec.Shares(amount, group.MemberIDs)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     groupID,
		Description: description,
		Amount:      amount,
		PayerID:     payerID,
		Split:       spec,
		Shares:      shares,
	}

	state := s.state(groupID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.hydrateLocked(ctx, state, groupID); err != nil {
		return nil, err
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	if err := s.recomputeLocked(ctx, state, groupID); err != nil {
		return nil, err
	}

	slog.Info("expense added",
		"group_id", groupID,
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"payer_id", expense.PayerID,
		"split_type", spec.Type,
	)
	return expense, nil
}

// SettleUp records a cash payment between two members and recomputes the
// group's simplified debts.
func (s *GroupService) SettleUp(ctx context.Context, groupID, payerID, recipientID string, amount float64, note string) (*models.Settlement, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("settlement amount %.2f: %w", amount, apperrors.ErrInvalidAmount)
	}
	if payerID == recipientID {
		return nil, fmt.Errorf("payer and recipient must differ: %w", apperrors.ErrValidation)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(payerID) {
		return nil, fmt.Errorf("payer %s is not a member of group %s: %w", payerID, groupID, apperrors.ErrValidation)
	}
	if !group.HasMember(recipientID) {
		return nil, fmt.Errorf("recipient %s is not a member of group %s: %w", recipientID, groupID, apperrors.ErrValidation)
	}

	settlement := &models.Settlement{
		GroupID:     groupID,
		PayerID:     payerID,
		RecipientID: recipientID,
		Amount:      amount,
		Note:        note,
	}

	state := s.state(groupID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.hydrateLocked(ctx, state, groupID); err != nil {
		return nil, err
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, err
	}
	if err := state.tracker.RecordSettlement(settlement); err != nil {
		return nil, err
	}
	if err := s.recomputeLocked(ctx, state, groupID); err != nil {
		return nil, err
	}

	slog.Info("settlement recorded",
		"group_id", groupID,
		"settlement_id", settlement.ID,
		"payer_id", payerID,
		"recipient_id", recipientID,
		"amount", amount,
	)
	return settlement, nil
}

// Debts returns the group's cached simplified debts. The read itself is
// O(1); only a first touch after startup pays for hydration.
func (s *GroupService) Debts(ctx context.Context, groupID string) ([]models.DebtRecord, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	state := s.state(groupID)
	state.mu.Lock()
	defer state.mu.Unlock()

	if err := s.hydrateLocked(ctx, state, groupID); err != nil {
		return nil, err
	}
	return state.tracker.Debts(), nil
}

// Balances computes the group's current net balances from the full ledger.
func (s *GroupService) Balances(ctx context.Context, groupID string) (map[string]float64, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.NetBalances(expenses, settlements, group.MemberIDs), nil
}

// Summarize builds a presentation-ready overview of the group: totals
// plus the simplified debts with member names resolved.
func (s *GroupService) Summarize(ctx context.Context, groupID string) (*Summary, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	debts, err := s.Debts(ctx, groupID)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		GroupID:     group.ID,
		GroupName:   group.Name,
		MemberCount: len(group.MemberIDs),
	}
	for _, e := range expenses {
		summary.ExpenseCount++
		summary.TotalExpenses += e.Amount
	}
	for _, d := range debts {
		summary.Debts = append(summary.Debts, DebtLine{
			BorrowerID:   d.BorrowerID,
			BorrowerName: s.displayName(ctx, d.BorrowerID),
			LenderID:     d.LenderID,
			LenderName:   s.displayName(ctx, d.LenderID),
			Amount:       d.Amount,
		})
	}
	return summary, nil
}

// state returns the group's in-memory state, creating it on first touch.
func (s *GroupService) state(groupID string) *groupState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.groups[groupID]
	if !ok {
		state = &groupState{tracker: ledger.NewTracker()}
		s.groups[groupID] = state
	}
	return state
}

// hydrateLocked loads the persisted settlement history into the tracker
// and computes the initial debt cache. The persisted shape is settlements
// only; the cache is always rebuilt. Callers must hold state.mu.
func (s *GroupService) hydrateLocked(ctx context.Context, state *groupState, groupID string) error {
	if state.hydrated {
		return nil
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	state.tracker.LoadSettlements(settlements)
	if err := s.recomputeLocked(ctx, state, groupID); err != nil {
		return err
	}
	state.hydrated = true
	return nil
}

// recomputeLocked reruns the tracker against a fresh ledger snapshot.
// Callers must hold state.mu.
func (s *GroupService) recomputeLocked(ctx context.Context, state *groupState, groupID string) error {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return err
	}
	return state.tracker.Recompute(expenses, group.MemberIDs)
}

// checkRegistered verifies that every ID belongs to a registered user.
func (s *GroupService) checkRegistered(ctx context.Context, memberIDs []string) error {
	for _, id := range memberIDs {
		if _, err := s.store.GetUser(ctx, id); err != nil {
			return fmt.Errorf("member %s is not a registered user: %w", id, apperrors.ErrValidation)
		}
	}
	return nil
}

// displayName resolves a user's name, falling back to the raw ID.
func (s *GroupService) displayName(ctx context.Context, userID string) string {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return userID
	}
	return user.Name
}

// dedupe removes duplicate IDs, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
