package models

// Settlement represents a cash payment between group members to clear debts.
// Settlements are immutable once created and are the only persisted state
// of a group's debt tracker.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// PayerID is the member who paid (debtor settling up).
	PayerID string `json:"payer_id"`

	// RecipientID is the member who received the payment (creditor being paid).
	RecipientID string `json:"recipient_id"`

	// Amount is the payment amount.
	Amount float64 `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`
}
