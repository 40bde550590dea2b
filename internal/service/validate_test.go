package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/david-rodelgo/gastoscompartidos/internal/models"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12.50", 12.5, false},
		{"12,50", 12.5, false},
		{" 3 ", 3, false},
		{"0.005", 0.01, false},
		{"1e2", 100, false},
		{"0.004", 0, true},
		{"0", 0, true},
		{"-1", 0, true},
		{"1.000,50", 0, true},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidArgument), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestValidateDocumentDuplicateFamilyIDs(t *testing.T) {
	doc := &models.TripDocument{
		ID:      "t1",
		Name:    "Trip",
		AdminID: "f1",
		Families: []models.Family{
			{ID: "f1", Name: "A", MemberCount: 1, Role: models.RoleAdmin},
			{ID: "f1", Name: "B", MemberCount: 1, Role: models.RoleUser},
		},
	}
	err := validateDocument(doc)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	doc.Families[1].ID = "f2"
	assert.NoError(t, validateDocument(doc))

	doc.AdminID = "f9"
	assert.ErrorIs(t, validateDocument(doc), ErrInvalidArgument)
}
