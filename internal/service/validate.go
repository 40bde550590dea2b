package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return invalidf("%s is required", field)
	}
	return nil
}

func validateMemberCount(n int32) error {
	if n < 1 {
		return invalidf("member count must be at least 1, got %d", n)
	}
	return nil
}

// parseAmount accepts "12.50" as well as "12,50" and rounds to cents.
// The result must be positive.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, invalidf("amount is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, invalidf("amount %q is not a number", s)
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return 0, invalidf("amount must be greater than zero")
	}
	return d.InexactFloat64(), nil
}

// validateDocument checks a whole client-supplied document before it is
// stored, so that later settlement computations cannot hit a ghost payer.
func validateDocument(doc *models.TripDocument) error {
	if doc.ID == "" {
		return invalidf("trip id is required")
	}
	if err := validateName("trip name", doc.Name); err != nil {
		return err
	}
	if len(doc.Families) == 0 {
		return invalidf("a trip needs at least one family")
	}

	ids := make(map[string]struct{}, len(doc.Families))
	for _, f := range doc.Families {
		if f.ID == "" {
			return invalidf("family id is required")
		}
		if _, dup := ids[f.ID]; dup {
			return invalidf("duplicate family id %s", f.ID)
		}
		ids[f.ID] = struct{}{}
		if err := validateName("family name", f.Name); err != nil {
			return err
		}
		if f.MemberCount < 1 {
			return invalidf("family %s: member count must be at least 1", f.ID)
		}
		if !f.Role.Valid() {
			return invalidf("family %s: unknown role %q", f.ID, f.Role)
		}
	}
	creator := doc.FindFamily(doc.AdminID)
	if creator == nil {
		return invalidf("admin id %s does not match any family", doc.AdminID)
	}
	if !creator.IsAdmin() {
		return fmt.Errorf("%w: %s", ErrCreatorRole, creator.ID)
	}

	for _, e := range doc.Expenses {
		if e.Amount < 0 {
			return invalidf("expense %s: amount must not be negative", e.ID)
		}
		if _, ok := ids[e.FamilyID]; !ok {
			return invalidf("expense %s: payer %s does not match any family", e.ID, e.FamilyID)
		}
	}
	return nil
}
