// Package calculator turns a trip's families and expenses into balances and
// the transfers that settle them.
package calculator

import (
	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

// Epsilon is the tolerance for every monetary comparison.
const Epsilon = 0.01

// Balance represents where one family stands relative to its fair share.
type Balance struct {
	FamilyID string
	Paid     float64 // Sum of expenses paid by this family
	Share    float64 // What this family should have paid
	Balance  float64 // Positive = owed money, Negative = owes money
}

// ComputeBalances computes one Balance per family, in the order of families.
//
// Algorithm:
// - total = sum of all expense amounts
// - BY_MEMBER: share = total * memberCount / totalMembers
// - BY_FAMILY: share = total / len(families)
// - paid = sum of amounts of expenses whose payer is the family
// - balance = paid - share
//
// A zero divisor is replaced with 1 so the result stays defined. Callers are
// expected to have validated amounts and member counts already.
func ComputeBalances(families []models.Family, expenses []models.Expense, method models.SplitMethod) []Balance {
	var total float64
	paid := make(map[string]float64, len(families))
	for _, e := range expenses {
		total += e.Amount
		paid[e.FamilyID] += e.Amount
	}

	totalMembers := 0
	for _, f := range families {
		totalMembers += f.MemberCount
	}
	memberDivisor := float64(totalMembers)
	if memberDivisor == 0 {
		memberDivisor = 1
	}
	familyDivisor := float64(len(families))
	if familyDivisor == 0 {
		familyDivisor = 1
	}

	balances := make([]Balance, 0, len(families))
	for _, f := range families {
		var share float64
		if method == models.SplitByFamily {
			share = total / familyDivisor
		} else {
			share = total * (float64(f.MemberCount) / memberDivisor)
		}
		p := paid[f.ID]
		balances = append(balances, Balance{
			FamilyID: f.ID,
			Paid:     p,
			Share:    share,
			Balance:  p - share,
		})
	}

	return balances
}
