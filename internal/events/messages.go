package events

import (
	"encoding/json"
	"time"
)

// Actions carried by TripChanged.
const (
	ActionCreated          = "created"
	ActionFamilyJoined     = "family_joined"
	ActionFamilyUpdated    = "family_updated"
	ActionExpenseAdded     = "expense_added"
	ActionExpenseDeleted   = "expense_deleted"
	ActionSaved            = "saved"
	ActionSettlementToggle = "settlement_toggled"
	ActionSettlementsPrune = "settlements_pruned"
)

// TripChanged tells subscribers a trip document has a new version.
// It carries no document data; consumers fetch the trip if they need it.
type TripChanged struct {
	TripID    string    `json:"trip_id"`
	Version   int64     `json:"version"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTripChanged stamps a change notification with the current time.
func NewTripChanged(tripID string, version int64, action string) *TripChanged {
	return &TripChanged{
		TripID:    tripID,
		Version:   version,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *TripChanged) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TripChangedFromJSON decodes a message published by AMQPPublisher.
func TripChangedFromJSON(data []byte) (*TripChanged, error) {
	var msg TripChanged
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
