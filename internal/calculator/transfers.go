package calculator

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnbalanced is returned when balances do not sum to zero, which means the
// stored amounts are inconsistent.
var ErrUnbalanced = errors.New("balances do not sum to zero")

// Transfer represents a single proposed payment between two families.
type Transfer struct {
	From   string // Family that owes
	To     string // Family that is owed
	Amount float64
}

type party struct {
	familyID  string
	remaining float64
}

// PlanTransfers matches debtors with creditors and returns the transfers that
// bring every balance to zero.
//
// Algorithm:
// - Debtors have balance < -Epsilon, creditors balance > Epsilon; the rest are skipped
// - Both lists keep input order, there is no sorting by amount
// - Greedy merge: pay min(debt, credit) from the current debtor to the current
//   creditor, then move past whichever side dropped below Epsilon
// - Stop when either list runs out
//
// If more than Epsilon is left unresolved on either side, ErrUnbalanced is
// returned together with the transfers planned so far.
func PlanTransfers(balances []Balance) ([]Transfer, error) {
	var debtors, creditors []party
	// slack collects amounts dropped as noise: near-zero balances left out of
	// the matching and sub-Epsilon remainders skipped by the cursors.
	var slack float64
	for _, b := range balances {
		switch {
		case b.Balance < -Epsilon:
			debtors = append(debtors, party{familyID: b.FamilyID, remaining: -b.Balance})
		case b.Balance > Epsilon:
			creditors = append(creditors, party{familyID: b.FamilyID, remaining: b.Balance})
		default:
			slack += math.Abs(b.Balance)
		}
	}

	var transfers []Transfer
	d, c := 0, 0
	for d < len(debtors) && c < len(creditors) {
		debtor := &debtors[d]
		creditor := &creditors[c]

		amount := debtor.remaining
		if creditor.remaining < amount {
			amount = creditor.remaining
		}

		transfers = append(transfers, Transfer{
			From:   debtor.familyID,
			To:     creditor.familyID,
			Amount: amount,
		})

		debtor.remaining -= amount
		creditor.remaining -= amount

		if debtor.remaining < Epsilon {
			slack += debtor.remaining
			d++
		}
		if creditor.remaining < Epsilon {
			slack += creditor.remaining
			c++
		}
	}

	if left := unresolved(debtors[d:]) + unresolved(creditors[c:]); left > Epsilon+slack {
		return transfers, fmt.Errorf("%w: %.2f left unresolved", ErrUnbalanced, left)
	}

	return transfers, nil
}

func unresolved(parties []party) float64 {
	var sum float64
	for _, p := range parties {
		sum += p.remaining
	}
	return sum
}
