package models

import "github.com/jewelmj/splitsmart/internal/split"

// Expense represents a single shared expense in a group's ledger.
// Expenses are immutable once created; the ledger is append-only.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Description is a short human-readable label (e.g. "Dinner", "Fuel").
	Description string `json:"description"`

	// Amount is the full expense amount paid by the payer.
	Amount float64 `json:"amount"`

	// PayerID is the member who paid the full amount.
	PayerID string `json:"payer_id"`

	// Split records how the amount was divided, so a reloaded ledger can
	// be re-validated and displayed.
	Split split.Spec `json:"split"`

	// Shares maps member ID to the amount that member owes for this
	// expense. Produced by the split strategy at admission time; the
	// strategy guarantees the shares sum to Amount.
	Shares map[string]float64 `json:"shares"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`
}
