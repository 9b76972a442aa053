package ledger

import (
	"fmt"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
)

// Tracker manages debt calculation and settlement history for one group.
// It owns the ordered settlement list (the only state worth persisting)
// and caches the last simplified-debt list, which is derived and rebuilt
// on every Recompute.
//
// Tracker is not safe for concurrent use. Callers embedding it in a
// concurrent host must serialize access per group; the services layer
// holds one mutex per group for exactly this reason.
type Tracker struct {
	settlements []*models.Settlement
	debts       []models.DebtRecord
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordSettlement appends a settlement to the history. It does not
// recompute debts; callers batch-loading settlements call Recompute once
// at the end.
func (t *Tracker) RecordSettlement(s *models.Settlement) error {
	if s.Amount <= 0 {
		return fmt.Errorf("settlement amount %.2f: %w", s.Amount, apperrors.ErrInvalidAmount)
	}
	t.settlements = append(t.settlements, s)
	return nil
}

// LoadSettlements replaces the settlement history, discarding the debt
// cache. Used when rehydrating a tracker from persisted state; the caller
// must Recompute with a fresh ledger snapshot before reading debts.
func (t *Tracker) LoadSettlements(settlements []*models.Settlement) {
	t.settlements = append([]*models.Settlement(nil), settlements...)
	t.debts = nil
}

// Settlements returns a copy of the settlement history in record order.
func (t *Tracker) Settlements() []*models.Settlement {
	return append([]*models.Settlement(nil), t.settlements...)
}

// Recompute folds the given ledger snapshot together with the owned
// settlement history into net balances and rebuilds the simplified-debt
// cache. The cache is replaced only on success, so readers never observe
// partial state; recomputing with an unchanged ledger yields an identical
// list.
func (t *Tracker) Recompute(expenses []*models.Expense, memberIDs []string) error {
	balances := NetBalances(expenses, t.settlements, memberIDs)
	debts, err := Simplify(balances)
	if err != nil {
		return err
	}
	t.debts = debts
	return nil
}

// Debts returns the last computed simplified-debt list. It never triggers
// recomputation; the read is O(1).
func (t *Tracker) Debts() []models.DebtRecord {
	return append([]models.DebtRecord(nil), t.debts...)
}
