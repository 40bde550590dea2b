package models

import "strings"

// TripDocument is the whole persisted state of one trip.
type TripDocument struct {
	// ID is the short public identifier of the trip (8 characters).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Pirineo 2025").
	Name string `json:"name"`

	// Families are the participant groups. Order matters: balances and
	// transfers follow the order of this slice.
	Families []Family `json:"families"`

	// Expenses are all recorded payments, in insertion order.
	Expenses []Expense `json:"expenses"`

	// AdminID is the ID of the family that created the trip.
	AdminID string `json:"adminId"`

	// SettledTransfers holds the settlement keys users confirmed as paid.
	SettledTransfers []string `json:"settledTransfers"`

	// Version is bumped by the store on every successful save.
	Version int64 `json:"version"`
}

// FindFamily returns the family with the given ID, or nil.
func (t *TripDocument) FindFamily(id string) *Family {
	for i := range t.Families {
		if t.Families[i].ID == id {
			return &t.Families[i]
		}
	}
	return nil
}

// FindFamilyByName matches names trimmed and case-insensitively.
func (t *TripDocument) FindFamilyByName(name string) *Family {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range t.Families {
		if strings.ToLower(strings.TrimSpace(t.Families[i].Name)) == needle {
			return &t.Families[i]
		}
	}
	return nil
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (t *TripDocument) Clone() *TripDocument {
	c := *t
	c.Families = append([]Family(nil), t.Families...)
	c.Expenses = append([]Expense(nil), t.Expenses...)
	c.SettledTransfers = append([]string(nil), t.SettledTransfers...)
	return &c
}
