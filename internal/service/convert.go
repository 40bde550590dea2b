package service

import (
	"time"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/settlement"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api"
)

func toAPITrip(doc *models.TripDocument) *api.Trip {
	families := make([]*api.Family, len(doc.Families))
	for i, f := range doc.Families {
		families[i] = &api.Family{
			Id:          f.ID,
			Name:        f.Name,
			MemberCount: int32(f.MemberCount),
			Role:        string(f.Role),
		}
	}

	expenses := make([]*api.Expense, len(doc.Expenses))
	for i, e := range doc.Expenses {
		expenses[i] = &api.Expense{
			Id:       e.ID,
			Concept:  e.Concept,
			Amount:   e.Amount,
			FamilyId: e.FamilyID,
			Date:     e.Date.UTC().Format(time.RFC3339),
			ImageUrl: e.ImageURL,
		}
	}

	settled := doc.SettledTransfers
	if settled == nil {
		settled = []string{}
	}

	return &api.Trip{
		Id:               doc.ID,
		Name:             doc.Name,
		Families:         families,
		Expenses:         expenses,
		AdminId:          doc.AdminID,
		SettledTransfers: settled,
		Version:          doc.Version,
	}
}

// fromAPITrip converts a client-supplied document. Dates must be RFC 3339;
// an empty date is kept as the zero time.
func fromAPITrip(t *api.Trip) (*models.TripDocument, error) {
	doc := &models.TripDocument{
		ID:               t.Id,
		Name:             t.Name,
		Families:         make([]models.Family, 0, len(t.Families)),
		Expenses:         make([]models.Expense, 0, len(t.Expenses)),
		AdminID:          t.AdminId,
		SettledTransfers: append([]string{}, t.SettledTransfers...),
		Version:          t.Version,
	}

	for _, f := range t.Families {
		if f == nil {
			return nil, invalidf("null family")
		}
		doc.Families = append(doc.Families, models.Family{
			ID:          f.Id,
			Name:        f.Name,
			MemberCount: int(f.MemberCount),
			Role:        models.Role(f.Role),
		})
	}

	for _, e := range t.Expenses {
		if e == nil {
			return nil, invalidf("null expense")
		}
		var date time.Time
		if e.Date != "" {
			parsed, err := time.Parse(time.RFC3339, e.Date)
			if err != nil {
				return nil, invalidf("expense %s: bad date %q", e.Id, e.Date)
			}
			date = parsed.UTC()
		}
		doc.Expenses = append(doc.Expenses, models.Expense{
			ID:       e.Id,
			Concept:  e.Concept,
			Amount:   e.Amount,
			FamilyID: e.FamilyId,
			Date:     date,
			ImageURL: e.ImageUrl,
		})
	}

	return doc, nil
}

func toAPISettlement(view *settlement.View) *api.GetSettlementResponse {
	resp := &api.GetSettlementResponse{
		Method:       string(view.Method),
		TotalSpent:   view.TotalSpent,
		TotalMembers: int32(view.TotalMembers),
		Balances:     make([]*api.FamilyBalance, len(view.Balances)),
		Transfers:    make([]*api.Transfer, len(view.Transfers)),
		OrphanedKeys: view.OrphanedKeys,
	}
	if resp.OrphanedKeys == nil {
		resp.OrphanedKeys = []string{}
	}

	for i, b := range view.Balances {
		resp.Balances[i] = &api.FamilyBalance{
			FamilyId: b.FamilyID,
			Name:     b.Name,
			Paid:     b.Paid,
			Share:    b.Share,
			Balance:  b.Balance.Balance,
		}
	}

	for i, t := range view.Transfers {
		resp.Transfers[i] = &api.Transfer{
			FromId:   t.From,
			FromName: t.FromName,
			ToId:     t.To,
			ToName:   t.ToName,
			Amount:   t.Amount,
			Key:      t.Key,
			Settled:  t.Settled,
		}
	}

	return resp
}
