package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

func testTrip() *models.TripDocument {
	return &models.TripDocument{
		ID:   "trip0001",
		Name: "Pirineo",
		Families: []models.Family{
			{ID: "A", Name: "García", MemberCount: 2, Role: models.RoleAdmin},
			{ID: "B", Name: "López", MemberCount: 2, Role: models.RoleUser},
		},
		Expenses: []models.Expense{
			{ID: "e1", Concept: "Casa rural", Amount: 100, FamilyID: "A"},
		},
		AdminID: "A",
	}
}

func TestBuild(t *testing.T) {
	doc := testTrip()
	doc.SettledTransfers = []string{"B-A-50.00", "B-A-10.00"}

	view, err := Build(doc, models.SplitByMember)
	require.NoError(t, err)

	assert.Equal(t, models.SplitByMember, view.Method)
	assert.InDelta(t, 100, view.TotalSpent, 0.001)
	assert.Equal(t, 4, view.TotalMembers)

	require.Len(t, view.Balances, 2)
	assert.Equal(t, "García", view.Balances[0].Name)
	assert.InDelta(t, 50, view.Balances[0].Balance.Balance, 0.01)
	assert.InDelta(t, -50, view.Balances[1].Balance.Balance, 0.01)

	require.Len(t, view.Transfers, 1)
	tr := view.Transfers[0]
	assert.Equal(t, "B", tr.From)
	assert.Equal(t, "A", tr.To)
	assert.Equal(t, "López", tr.FromName)
	assert.Equal(t, "García", tr.ToName)
	assert.Equal(t, "B-A-50.00", tr.Key)
	assert.True(t, tr.Settled)

	assert.Equal(t, []string{"B-A-10.00"}, view.OrphanedKeys)
}

func TestBuild_ByFamily(t *testing.T) {
	doc := testTrip()
	doc.Families[0].MemberCount = 6
	doc.Families = append(doc.Families, models.Family{ID: "C", Name: "Ruiz", MemberCount: 1, Role: models.RoleUser})
	doc.Expenses = []models.Expense{{ID: "e1", Amount: 90, FamilyID: "A"}}

	view, err := Build(doc, models.SplitByFamily)
	require.NoError(t, err)

	require.Len(t, view.Transfers, 2)
	for _, tr := range view.Transfers {
		assert.Equal(t, "A", tr.To)
		assert.InDelta(t, 30, tr.Amount, 0.01)
		assert.False(t, tr.Settled)
	}
	assert.Equal(t, "B-A-30.00", view.Transfers[0].Key)
	assert.Equal(t, "C-A-30.00", view.Transfers[1].Key)
}

func TestBuild_NoExpenses(t *testing.T) {
	doc := testTrip()
	doc.Expenses = nil

	view, err := Build(doc, models.SplitByMember)
	require.NoError(t, err)
	assert.Empty(t, view.Transfers)
	assert.Empty(t, view.OrphanedKeys)
}

func TestBuild_UnknownPayerIsIntegrityError(t *testing.T) {
	doc := testTrip()
	doc.Expenses = append(doc.Expenses, models.Expense{ID: "e2", Amount: 40, FamilyID: "ghost"})

	_, err := Build(doc, models.SplitByMember)
	assert.ErrorIs(t, err, calculator.ErrUnbalanced)
}
