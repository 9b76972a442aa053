// Package split implements the share strategies that divide an expense
// amount among group members. The set of strategies is small and closed,
// so they are modeled as a tagged value rather than an interface hierarchy:
// the Type discriminator doubles as the serialization tag.
package split

import (
	"fmt"
	"math"
	"sort"

	"github.com/jewelmj/splitsmart/internal/apperrors"
)

// Type identifies a share strategy.
type Type string

const (
	// TypeEqual divides the amount equally among all members.
	TypeEqual Type = "EQUAL"

	// TypePercentage divides the amount according to per-member percentages.
	TypePercentage Type = "PERCENTAGE"
)

// percentTolerance is how far percentages may drift from summing to 100.
const percentTolerance = 1e-9

// Spec describes how an expense is divided among members.
// Percentages is only set for TypePercentage and maps member ID to a
// share of 100.
type Spec struct {
	Type        Type               `json:"type"`
	Percentages map[string]float64 `json:"percentages,omitempty"`
}

// Equal returns a spec that splits equally among all members.
func Equal() Spec {
	return Spec{Type: TypeEqual}
}

// Percentage returns a spec that splits by the given percentages.
func Percentage(percentages map[string]float64) Spec {
	return Spec{Type: TypePercentage, Percentages: percentages}
}

// Validate checks that the spec can produce shares summing to amount for
// the given members. An expense must pass Validate before it is admitted
// to the ledger.
func (s Spec) Validate(amount float64, memberIDs []string) error {
	if amount <= 0 {
		return fmt.Errorf("expense amount %.2f: %w", amount, apperrors.ErrInvalidAmount)
	}

	switch s.Type {
	case TypeEqual:
		if len(memberIDs) == 0 {
			return fmt.Errorf("equal split requires at least one member: %w", apperrors.ErrInvalidSplit)
		}
		return nil

	case TypePercentage:
		if len(s.Percentages) == 0 {
			return fmt.Errorf("percentage split requires percentages: %w", apperrors.ErrInvalidSplit)
		}
		members := make(map[string]bool, len(memberIDs))
		for _, id := range memberIDs {
			members[id] = true
		}
		total := 0.0
		for id, pct := range s.Percentages {
			if !members[id] {
				return fmt.Errorf("percentage assigned to non-member %q: %w", id, apperrors.ErrInvalidSplit)
			}
			if pct <= 0 {
				return fmt.Errorf("percentage for %q must be positive, got %v: %w", id, pct, apperrors.ErrInvalidSplit)
			}
			total += pct
		}
		if math.Abs(total-100.0) > percentTolerance {
			return fmt.Errorf("percentages sum to %v, want 100: %w", total, apperrors.ErrInvalidSplit)
		}
		return nil

	default:
		return fmt.Errorf("unknown split type %q: %w", s.Type, apperrors.ErrInvalidSplit)
	}
}

// Shares computes the amount owed per member. The returned shares always
// sum to exactly amount after 2-decimal rounding: leftover cents are
// assigned deterministically in lexicographic member order.
func (s Spec) Shares(amount float64, memberIDs []string) (map[string]float64, error) {
	if err := s.Validate(amount, memberIDs); err != nil {
		return nil, err
	}

	switch s.Type {
	case TypeEqual:
		return equalShares(amount, memberIDs), nil
	case TypePercentage:
		return percentageShares(amount, s.Percentages), nil
	default:
		// Validate already rejected unknown types.
		return nil, fmt.Errorf("unknown split type %q: %w", s.Type, apperrors.ErrInvalidSplit)
	}
}

func equalShares(amount float64, memberIDs []string) map[string]float64 {
	ids := append([]string(nil), memberIDs...)
	sort.Strings(ids)

	n := len(ids)
	base := math.Floor(amount/float64(n)*100) / 100
	leftoverCents := int(math.Round((amount - base*float64(n)) * 100))

	shares := make(map[string]float64, n)
	for i, id := range ids {
		share := base
		if i < leftoverCents {
			share = round2(base + 0.01)
		}
		shares[id] = share
	}
	return shares
}

func percentageShares(amount float64, percentages map[string]float64) map[string]float64 {
	ids := make([]string, 0, len(percentages))
	for id := range percentages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	shares := make(map[string]float64, len(ids))
	total := 0.0
	for _, id := range ids {
		share := round2(amount * percentages[id] / 100.0)
		shares[id] = share
		total += share
	}

	// Rounding can leave the sum a cent or two off; absorb the drift into
	// the first member so shares reproduce the amount exactly.
	if drift := round2(amount - total); drift != 0 {
		shares[ids[0]] = round2(shares[ids[0]] + drift)
	}
	return shares
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
