package ledger

import (
	"fmt"
	"math"
	"sort"

	"github.com/jewelmj/splitsmart/internal/apperrors"
	"github.com/jewelmj/splitsmart/internal/models"
)

// party is one side of the matching: a member and their remaining amount.
type party struct {
	id     string
	amount float64
}

// Simplify reduces net balances to a list of directed transfers using
// greedy largest-pair matching: repeatedly settle the largest remaining
// lender against the largest remaining borrower. The result is not the
// globally minimal transaction count (that problem is NP-hard) but is
// deterministic and O(n log n).
//
// Ordering is pinned so recomputing from the same balances yields an
// identical list: parties are ordered by remaining amount descending,
// ties broken lexicographically by member ID. Output order is emission
// order.
//
// Simplify returns ErrInconsistentLedger when lender and borrower totals
// disagree beyond tolerance, which indicates the caller fed it balances
// that do not conserve value.
func Simplify(balances map[string]float64) ([]models.DebtRecord, error) {
	var lenders, borrowers []party
	var lent, borrowed float64
	for id, balance := range balances {
		switch {
		case balance > 0:
			lenders = append(lenders, party{id: id, amount: balance})
			lent += balance
		case balance < 0:
			borrowers = append(borrowers, party{id: id, amount: -balance})
			borrowed -= balance
		}
	}

	if math.Abs(lent-borrowed) > sumTolerance {
		return nil, fmt.Errorf("lender total %.2f does not match borrower total %.2f: %w",
			lent, borrowed, apperrors.ErrInconsistentLedger)
	}

	sortParties(lenders)
	sortParties(borrowers)

	var debts []models.DebtRecord
	for len(lenders) > 0 && len(borrowers) > 0 {
		lender, borrower := lenders[0], borrowers[0]
		lenders, borrowers = lenders[1:], borrowers[1:]

		payment := math.Min(lender.amount, borrower.amount)
		if payment > settledThreshold {
			debts = append(debts, models.DebtRecord{
				BorrowerID: borrower.id,
				LenderID:   lender.id,
				Amount:     round2(payment),
			})
		}

		// A party with a meaningful remainder goes back into its list at
		// the position that preserves the sort order; otherwise it is
		// fully settled and dropped.
		if rem := round2(lender.amount - payment); rem > settledThreshold {
			lenders = reinsert(lenders, party{id: lender.id, amount: rem})
		}
		if rem := round2(borrower.amount - payment); rem > settledThreshold {
			borrowers = reinsert(borrowers, party{id: borrower.id, amount: rem})
		}
	}
	return debts, nil
}

// sortParties orders by amount descending, ties lexicographic by ID.
func sortParties(parties []party) {
	sort.Slice(parties, func(i, j int) bool {
		if parties[i].amount != parties[j].amount {
			return parties[i].amount > parties[j].amount
		}
		return parties[i].id < parties[j].id
	})
}

// reinsert places p into the sorted slice at its ordered position.
func reinsert(parties []party, p party) []party {
	i := sort.Search(len(parties), func(i int) bool {
		if parties[i].amount != p.amount {
			return parties[i].amount < p.amount
		}
		return parties[i].id > p.id
	})
	parties = append(parties, party{})
	copy(parties[i+1:], parties[i:])
	parties[i] = p
	return parties
}
