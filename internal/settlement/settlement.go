// Package settlement assembles the settlement view of a trip: balances,
// planned transfers, and which of them users already marked as paid.
package settlement

import (
	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
	"github.com/david-rodelgo/gastoscompartidos/internal/ledger"
	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

// FamilyBalance is a calculator.Balance with the family's display name.
type FamilyBalance struct {
	calculator.Balance
	Name string
}

// PlannedTransfer is a calculator.Transfer ready for display.
type PlannedTransfer struct {
	calculator.Transfer
	FromName string
	ToName   string
	Key      string
	Settled  bool
}

// View is everything a client needs to render the split screen.
type View struct {
	Method       models.SplitMethod
	TotalSpent   float64
	TotalMembers int
	Balances     []FamilyBalance
	Transfers    []PlannedTransfer
	OrphanedKeys []string
}

// Build recomputes the view from scratch for the given document and method.
// Errors from the transfer planner are returned as is.
func Build(doc *models.TripDocument, method models.SplitMethod) (*View, error) {
	names := make(map[string]string, len(doc.Families))
	view := &View{Method: method}
	for _, f := range doc.Families {
		names[f.ID] = f.Name
		view.TotalMembers += f.MemberCount
	}
	for _, e := range doc.Expenses {
		view.TotalSpent += e.Amount
	}

	balances := calculator.ComputeBalances(doc.Families, doc.Expenses, method)
	for _, b := range balances {
		view.Balances = append(view.Balances, FamilyBalance{Balance: b, Name: names[b.FamilyID]})
	}

	transfers, err := calculator.PlanTransfers(balances)
	if err != nil {
		return nil, err
	}

	for _, t := range transfers {
		key := ledger.Key(t)
		view.Transfers = append(view.Transfers, PlannedTransfer{
			Transfer: t,
			FromName: names[t.From],
			ToName:   names[t.To],
			Key:      key,
			Settled:  ledger.IsSettled(doc.SettledTransfers, key),
		})
	}
	view.OrphanedKeys = ledger.Orphaned(doc.SettledTransfers, transfers)

	return view, nil
}
