package calculator

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

func TestPlanTransfers(t *testing.T) {
	tests := []struct {
		name     string
		balances []Balance
		want     []Transfer
		wantErr  error
	}{
		{
			name:     "one debtor one creditor",
			balances: []Balance{{FamilyID: "A", Balance: 50}, {FamilyID: "B", Balance: -50}},
			want:     []Transfer{{From: "B", To: "A", Amount: 50}},
		},
		{
			name: "one creditor two debtors",
			balances: []Balance{
				{FamilyID: "A", Balance: 60},
				{FamilyID: "B", Balance: -30},
				{FamilyID: "C", Balance: -30},
			},
			want: []Transfer{
				{From: "B", To: "A", Amount: 30},
				{From: "C", To: "A", Amount: 30},
			},
		},
		{
			name: "input order drives matching, not magnitude",
			balances: []Balance{
				{FamilyID: "A", Balance: -10},
				{FamilyID: "B", Balance: 25},
				{FamilyID: "C", Balance: -40},
				{FamilyID: "D", Balance: 25},
			},
			want: []Transfer{
				{From: "A", To: "B", Amount: 10},
				{From: "C", To: "B", Amount: 15},
				{From: "C", To: "D", Amount: 25},
			},
		},
		{
			name: "near-zero balances are excluded",
			balances: []Balance{
				{FamilyID: "A", Balance: 0.004},
				{FamilyID: "B", Balance: -20},
				{FamilyID: "C", Balance: 20 - 0.004},
			},
			want: []Transfer{{From: "B", To: "C", Amount: 20 - 0.004}},
		},
		{
			name:     "all settled",
			balances: []Balance{{FamilyID: "A"}, {FamilyID: "B"}},
			want:     nil,
		},
		{
			name:     "unbalanced input is an integrity error",
			balances: []Balance{{FamilyID: "A", Balance: 50}, {FamilyID: "B", Balance: -80}},
			want:     []Transfer{{From: "B", To: "A", Amount: 50}},
			wantErr:  ErrUnbalanced,
		},
		{
			name:     "lone creditor is an integrity error",
			balances: []Balance{{FamilyID: "A", Balance: 5}},
			wantErr:  ErrUnbalanced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanTransfers(tt.balances)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("PlanTransfers() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d transfers %+v, want %d", len(got), got, len(tt.want))
			}
			for i := range got {
				if got[i].From != tt.want[i].From || got[i].To != tt.want[i].To {
					t.Errorf("transfer %d = %s -> %s, want %s -> %s",
						i, got[i].From, got[i].To, tt.want[i].From, tt.want[i].To)
				}
				if math.Abs(got[i].Amount-tt.want[i].Amount) > 0.01 {
					t.Errorf("transfer %d amount = %v, want %v", i, got[i].Amount, tt.want[i].Amount)
				}
			}
		})
	}
}

func TestPlanTransfers_SettlesEveryBalance(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		families, expenses := randomTrip(r)
		for _, method := range []models.SplitMethod{models.SplitByMember, models.SplitByFamily} {
			balances := ComputeBalances(families, expenses, method)

			transfers, err := PlanTransfers(balances)
			if err != nil {
				t.Fatalf("iteration %d (%s): unexpected error: %v", i, method, err)
			}

			remaining := make(map[string]float64, len(balances))
			for _, b := range balances {
				remaining[b.FamilyID] = b.Balance
			}
			for _, tr := range transfers {
				if tr.From == tr.To {
					t.Fatalf("iteration %d: self transfer %+v", i, tr)
				}
				if tr.Amount <= 0 {
					t.Fatalf("iteration %d: non-positive transfer %+v", i, tr)
				}
				remaining[tr.From] += tr.Amount
				remaining[tr.To] -= tr.Amount
			}
			for id, left := range remaining {
				if math.Abs(left) > 0.02 {
					t.Fatalf("iteration %d (%s): %s still at %v after transfers", i, method, id, left)
				}
			}

			again, _ := PlanTransfers(balances)
			if len(again) != len(transfers) {
				t.Fatalf("iteration %d: second plan has %d transfers, first had %d", i, len(again), len(transfers))
			}
			for j := range again {
				if again[j] != transfers[j] {
					t.Fatalf("iteration %d: transfer %d differs between runs: %+v vs %+v", i, j, again[j], transfers[j])
				}
			}
		}
	}
}
