package models

// DebtRecord is one simplified transfer: the borrower pays the lender the
// amount. Records are derived from net balances and always regenerated,
// never mutated in place or persisted. Amount is always strictly positive;
// the simplifier never emits a record below its settled threshold.
type DebtRecord struct {
	// BorrowerID is the member who owes money.
	BorrowerID string `json:"borrower_id"`

	// LenderID is the member who is owed money.
	LenderID string `json:"lender_id"`

	// Amount is the transfer amount, rounded to 2 decimal places.
	Amount float64 `json:"amount"`
}
