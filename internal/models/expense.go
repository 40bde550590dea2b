package models

import "time"

// Expense represents a payment made by one family for the trip.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Concept is a short label (e.g., "Supermercado", "Gasolina").
	Concept string `json:"concept"`

	// Amount is the paid amount. Non-negative, currency agnostic.
	Amount float64 `json:"amount"`

	// FamilyID is the paying family. Must reference an existing family.
	FamilyID string `json:"familyId"`

	// Date is when the expense was recorded.
	Date time.Time `json:"date"`

	// ImageURL is an optional receipt reference.
	ImageURL string `json:"imageUrl,omitempty"`
}
