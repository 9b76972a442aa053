// Package ledger implements the debt-ledger engine: it folds a group's
// expense and settlement history into per-member net balances and reduces
// them to a minimal set of transfers.
package ledger

import (
	"math"

	"github.com/jewelmj/splitsmart/internal/models"
)

// settledThreshold is the amount below which a balance or payment is
// treated as floating-point noise rather than real debt.
const settledThreshold = 0.01

// sumTolerance is the slack allowed between lender and borrower totals
// before the ledger is declared inconsistent. Twice the settled threshold,
// since both sides accumulate independent rounding.
const sumTolerance = 0.02

// NetBalances folds expenses and settlements into one signed balance per
// member. Positive means the member is owed money, negative means the
// member owes money.
//
// For each expense the payer gains the full amount and every borrower
// loses their share; a payer who also holds a share receives both effects,
// which nets out self-shares. For each settlement the payer gains the
// amount and the recipient loses it. Records referencing identifiers not
// in memberIDs are ignored, which guards against stale entries left by
// removed members.
//
// Balances are rounded to 2 decimal places and entries within the settled
// threshold of zero are dropped. The fold is a plain sum, so the result
// does not depend on record order.
func NetBalances(expenses []*models.Expense, settlements []*models.Settlement, memberIDs []string) map[string]float64 {
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	balances := make(map[string]float64, len(memberIDs))
	for _, e := range expenses {
		if members[e.PayerID] {
			balances[e.PayerID] += e.Amount
		}
		for borrower, share := range e.Shares {
			if members[borrower] {
				balances[borrower] -= share
			}
		}
	}
	for _, s := range settlements {
		if members[s.PayerID] {
			balances[s.PayerID] += s.Amount
		}
		if members[s.RecipientID] {
			balances[s.RecipientID] -= s.Amount
		}
	}

	net := make(map[string]float64, len(balances))
	for id, balance := range balances {
		balance = round2(balance)
		if math.Abs(balance) > settledThreshold {
			net[id] = balance
		}
	}
	return net
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
