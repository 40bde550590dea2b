// Package api defines the wire messages of trips.v1.TripService.
//
// Messages are plain structs encoded as JSON. Every request that addresses an
// existing trip exposes GetTripId so interceptors can authorise it without
// knowing the concrete type.
package api

// Family is a participant group of a trip.
type Family struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int32  `json:"memberCount"`
	Role        string `json:"role"`
}

// Expense is a payment made by one family.
type Expense struct {
	Id       string  `json:"id"`
	Concept  string  `json:"concept"`
	Amount   float64 `json:"amount"`
	FamilyId string  `json:"familyId"`
	Date     string  `json:"date"` // RFC 3339
	ImageUrl string  `json:"imageUrl,omitempty"`
}

// Trip is the whole trip document.
type Trip struct {
	Id               string     `json:"id"`
	Name             string     `json:"name"`
	Families         []*Family  `json:"families"`
	Expenses         []*Expense `json:"expenses"`
	AdminId          string     `json:"adminId"`
	SettledTransfers []string   `json:"settledTransfers"`
	Version          int64      `json:"version"`
}

type CreateTripRequest struct {
	Name        string `json:"name"`
	FamilyName  string `json:"familyName"`
	MemberCount int32  `json:"memberCount"`
}

type CreateTripResponse struct {
	Trip      *Trip  `json:"trip"`
	AccessKey string `json:"accessKey"`
	Token     string `json:"token"`
	FamilyId  string `json:"familyId"`
}

type OpenTripRequest struct {
	TripId    string `json:"tripId"`
	AccessKey string `json:"accessKey"`
}

func (r *OpenTripRequest) GetTripId() string { return r.TripId }

type OpenTripResponse struct {
	Trip  *Trip  `json:"trip"`
	Token string `json:"token"`
}

type GetTripRequest struct {
	TripId string `json:"tripId"`
}

func (r *GetTripRequest) GetTripId() string { return r.TripId }

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type JoinTripRequest struct {
	TripId      string `json:"tripId"`
	FamilyName  string `json:"familyName"`
	MemberCount int32  `json:"memberCount"`
}

func (r *JoinTripRequest) GetTripId() string { return r.TripId }

type JoinTripResponse struct {
	Trip     *Trip  `json:"trip"`
	FamilyId string `json:"familyId"`
	// Joined is false when a family with the same name already existed.
	Joined bool `json:"joined"`
}

type AddFamilyRequest struct {
	TripId      string `json:"tripId"`
	Name        string `json:"name"`
	MemberCount int32  `json:"memberCount"`
}

func (r *AddFamilyRequest) GetTripId() string { return r.TripId }

type AddFamilyResponse struct {
	Trip     *Trip  `json:"trip"`
	FamilyId string `json:"familyId"`
}

// UpdateFamilyRequest changes a family's role and/or member count. Nil fields
// are left untouched.
type UpdateFamilyRequest struct {
	TripId        string  `json:"tripId"`
	ActorFamilyId string  `json:"actorFamilyId"`
	FamilyId      string  `json:"familyId"`
	Role          *string `json:"role,omitempty"`
	MemberCount   *int32  `json:"memberCount,omitempty"`
}

func (r *UpdateFamilyRequest) GetTripId() string { return r.TripId }

type UpdateFamilyResponse struct {
	Trip *Trip `json:"trip"`
}

type AddExpenseRequest struct {
	TripId  string `json:"tripId"`
	Concept string `json:"concept"`
	// Amount is a decimal string; both "12.50" and "12,50" are accepted.
	Amount   string `json:"amount"`
	FamilyId string `json:"familyId"`
	ImageUrl string `json:"imageUrl,omitempty"`
}

func (r *AddExpenseRequest) GetTripId() string { return r.TripId }

type AddExpenseResponse struct {
	Trip      *Trip  `json:"trip"`
	ExpenseId string `json:"expenseId"`
}

type DeleteExpenseRequest struct {
	TripId    string `json:"tripId"`
	ExpenseId string `json:"expenseId"`
}

func (r *DeleteExpenseRequest) GetTripId() string { return r.TripId }

type DeleteExpenseResponse struct {
	Trip *Trip `json:"trip"`
}

// SaveTripRequest replaces the whole document. ExpectedVersion must be the
// version the client last read.
type SaveTripRequest struct {
	Trip            *Trip `json:"trip"`
	ExpectedVersion int64 `json:"expectedVersion"`
}

func (r *SaveTripRequest) GetTripId() string {
	if r.Trip == nil {
		return ""
	}
	return r.Trip.Id
}

type SaveTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetSettlementRequest struct {
	TripId string `json:"tripId"`
	// Method is BY_MEMBER (default) or BY_FAMILY.
	Method string `json:"method,omitempty"`
}

func (r *GetSettlementRequest) GetTripId() string { return r.TripId }

type FamilyBalance struct {
	FamilyId string  `json:"familyId"`
	Name     string  `json:"name"`
	Paid     float64 `json:"paid"`
	Share    float64 `json:"share"`
	Balance  float64 `json:"balance"`
}

type Transfer struct {
	FromId   string  `json:"fromId"`
	FromName string  `json:"fromName"`
	ToId     string  `json:"toId"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
	Key      string  `json:"key"`
	Settled  bool    `json:"settled"`
}

type GetSettlementResponse struct {
	Method       string           `json:"method"`
	TotalSpent   float64          `json:"totalSpent"`
	TotalMembers int32            `json:"totalMembers"`
	Balances     []*FamilyBalance `json:"balances"`
	Transfers    []*Transfer      `json:"transfers"`
	OrphanedKeys []string         `json:"orphanedKeys"`
}

type ToggleSettlementRequest struct {
	TripId string `json:"tripId"`
	Key    string `json:"key"`
}

func (r *ToggleSettlementRequest) GetTripId() string { return r.TripId }

type ToggleSettlementResponse struct {
	Trip    *Trip `json:"trip"`
	Settled bool  `json:"settled"`
}

type PruneSettlementsRequest struct {
	TripId        string `json:"tripId"`
	ActorFamilyId string `json:"actorFamilyId"`
	Method        string `json:"method,omitempty"`
}

func (r *PruneSettlementsRequest) GetTripId() string { return r.TripId }

type PruneSettlementsResponse struct {
	Trip    *Trip    `json:"trip"`
	Removed []string `json:"removed"`
}
