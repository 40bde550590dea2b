// Package service implements the connect handlers of trips.v1.TripService.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/david-rodelgo/gastoscompartidos/internal/auth"
	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
	"github.com/david-rodelgo/gastoscompartidos/internal/events"
	"github.com/david-rodelgo/gastoscompartidos/internal/ledger"
	"github.com/david-rodelgo/gastoscompartidos/internal/metrics"
	"github.com/david-rodelgo/gastoscompartidos/internal/models"
	"github.com/david-rodelgo/gastoscompartidos/internal/settlement"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api/apiconnect"
)

// createAttempts bounds retries when a generated trip ID is already taken.
const createAttempts = 3

// TripService implements the Connect TripService.
type TripService struct {
	apiconnect.UnimplementedTripServiceHandler
	store     storage.TripStore
	tokens    *auth.TokenManager
	publisher events.Publisher
	metrics   *metrics.Metrics
}

// NewTripService creates a TripService. A nil publisher disables events and
// nil metrics are registered on a private registry.
func NewTripService(store storage.TripStore, tokens *auth.TokenManager, publisher events.Publisher, m *metrics.Metrics) *TripService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if m == nil {
		m = metrics.New(prometheus.NewRegistry())
	}
	return &TripService{store: store, tokens: tokens, publisher: publisher, metrics: m}
}

// CreateTrip creates a trip whose only family is its admin.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"family_name", req.Msg.FamilyName,
		"member_count", req.Msg.MemberCount,
	)

	if err := validateName("trip name", req.Msg.Name); err != nil {
		return nil, toConnectError(err)
	}
	if err := validateName("family name", req.Msg.FamilyName); err != nil {
		return nil, toConnectError(err)
	}
	if err := validateMemberCount(req.Msg.MemberCount); err != nil {
		return nil, toConnectError(err)
	}

	accessKey := auth.NewAccessKey()
	hash, err := auth.HashAccessKey(accessKey)
	if err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	admin := models.Family{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Msg.FamilyName),
		MemberCount: int(req.Msg.MemberCount),
		Role:        models.RoleAdmin,
	}

	var rec *storage.TripRecord
	for attempt := 1; ; attempt++ {
		rec = &storage.TripRecord{
			AccessKeyHash: hash,
			Trip: &models.TripDocument{
				ID:               auth.NewTripID(),
				Name:             strings.TrimSpace(req.Msg.Name),
				Families:         []models.Family{admin},
				Expenses:         []models.Expense{},
				AdminID:          admin.ID,
				SettledTransfers: []string{},
			},
		}
		err = s.store.CreateTrip(ctx, rec)
		if errors.Is(err, storage.ErrAlreadyExists) && attempt < createAttempts {
			slog.Warn("Trip ID collision, retrying", "trip_id", rec.Trip.ID, "attempt", attempt)
			continue
		}
		break
	}
	if err != nil {
		slog.Error("CreateTrip failed", "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.tokens.Generate(rec.Trip.ID)
	if err != nil {
		slog.Error("CreateTrip failed", "trip_id", rec.Trip.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, rec.Trip, events.ActionCreated)
	slog.Info("Trip created", "trip_id", rec.Trip.ID, "admin_id", admin.ID)

	return connect.NewResponse(&api.CreateTripResponse{
		Trip:      toAPITrip(rec.Trip),
		AccessKey: accessKey,
		Token:     token,
		FamilyId:  admin.ID,
	}), nil
}

// OpenTrip exchanges a trip's access key for a session token.
func (s *TripService) OpenTrip(ctx context.Context, req *connect.Request[api.OpenTripRequest]) (*connect.Response[api.OpenTripResponse], error) {
	slog.Info("OpenTrip request received", "trip_id", req.Msg.TripId)

	rec, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Warn("OpenTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	if err := auth.CheckAccessKey(rec.AccessKeyHash, req.Msg.AccessKey); err != nil {
		slog.Warn("OpenTrip rejected", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	token, err := s.tokens.Generate(rec.Trip.ID)
	if err != nil {
		slog.Error("OpenTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Trip opened", "trip_id", rec.Trip.ID)

	return connect.NewResponse(&api.OpenTripResponse{
		Trip:  toAPITrip(rec.Trip),
		Token: token,
	}), nil
}

// GetTrip returns the current document.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripId)

	rec, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(rec.Trip)}), nil
}

// JoinTrip adds a USER family unless one with the same name already exists,
// in which case that family is returned and nothing is saved.
func (s *TripService) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	slog.Info("JoinTrip request received",
		"trip_id", req.Msg.TripId,
		"family_name", req.Msg.FamilyName,
	)

	if err := validateName("family name", req.Msg.FamilyName); err != nil {
		return nil, toConnectError(err)
	}
	if err := validateMemberCount(req.Msg.MemberCount); err != nil {
		return nil, toConnectError(err)
	}

	var familyID string
	var joined bool
	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionFamilyJoined, func(doc *models.TripDocument) error {
		if existing := doc.FindFamilyByName(req.Msg.FamilyName); existing != nil {
			familyID, joined = existing.ID, false
			return errNoChange
		}
		familyID, joined = uuid.NewString(), true
		doc.Families = append(doc.Families, models.Family{
			ID:          familyID,
			Name:        strings.TrimSpace(req.Msg.FamilyName),
			MemberCount: int(req.Msg.MemberCount),
			Role:        models.RoleUser,
		})
		return nil
	})
	if err != nil {
		slog.Error("JoinTrip failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Family joined", "trip_id", doc.ID, "family_id", familyID, "new", joined)

	return connect.NewResponse(&api.JoinTripResponse{
		Trip:     toAPITrip(doc),
		FamilyId: familyID,
		Joined:   joined,
	}), nil
}

// AddFamily adds a USER family. Names must be unique within the trip.
func (s *TripService) AddFamily(ctx context.Context, req *connect.Request[api.AddFamilyRequest]) (*connect.Response[api.AddFamilyResponse], error) {
	slog.Info("AddFamily request received", "trip_id", req.Msg.TripId, "name", req.Msg.Name)

	if err := validateName("family name", req.Msg.Name); err != nil {
		return nil, toConnectError(err)
	}
	if err := validateMemberCount(req.Msg.MemberCount); err != nil {
		return nil, toConnectError(err)
	}

	var familyID string
	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionFamilyJoined, func(doc *models.TripDocument) error {
		if doc.FindFamilyByName(req.Msg.Name) != nil {
			return fmt.Errorf("%w: %s", ErrFamilyExists, strings.TrimSpace(req.Msg.Name))
		}
		familyID = uuid.NewString()
		doc.Families = append(doc.Families, models.Family{
			ID:          familyID,
			Name:        strings.TrimSpace(req.Msg.Name),
			MemberCount: int(req.Msg.MemberCount),
			Role:        models.RoleUser,
		})
		return nil
	})
	if err != nil {
		slog.Error("AddFamily failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Family added", "trip_id", doc.ID, "family_id", familyID)

	return connect.NewResponse(&api.AddFamilyResponse{
		Trip:     toAPITrip(doc),
		FamilyId: familyID,
	}), nil
}

// UpdateFamily changes role and/or member count. Role changes need an admin
// actor and never apply to the trip creator. A family may change its own
// member count.
func (s *TripService) UpdateFamily(ctx context.Context, req *connect.Request[api.UpdateFamilyRequest]) (*connect.Response[api.UpdateFamilyResponse], error) {
	slog.Info("UpdateFamily request received",
		"trip_id", req.Msg.TripId,
		"actor_family_id", req.Msg.ActorFamilyId,
		"family_id", req.Msg.FamilyId,
	)

	var role models.Role
	if req.Msg.Role != nil {
		role = models.Role(*req.Msg.Role)
		if !role.Valid() {
			return nil, toConnectError(invalidf("unknown role %q", *req.Msg.Role))
		}
	}
	if req.Msg.MemberCount != nil {
		if err := validateMemberCount(*req.Msg.MemberCount); err != nil {
			return nil, toConnectError(err)
		}
	}
	selfUpdate := req.Msg.Role == nil && req.Msg.ActorFamilyId == req.Msg.FamilyId

	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionFamilyUpdated, func(doc *models.TripDocument) error {
		if !selfUpdate {
			if err := requireAdmin(doc, req.Msg.ActorFamilyId); err != nil {
				return err
			}
		}
		target := doc.FindFamily(req.Msg.FamilyId)
		if target == nil {
			return fmt.Errorf("%w: %s", ErrFamilyNotFound, req.Msg.FamilyId)
		}
		if req.Msg.Role != nil && target.ID == doc.AdminID && role != models.RoleAdmin {
			return fmt.Errorf("%w: %s", ErrCreatorRole, target.ID)
		}
		if req.Msg.MemberCount != nil {
			target.MemberCount = int(*req.Msg.MemberCount)
		}
		if req.Msg.Role != nil {
			target.Role = role
		}
		return nil
	})
	if err != nil {
		slog.Error("UpdateFamily failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Family updated", "trip_id", doc.ID, "family_id", req.Msg.FamilyId)

	return connect.NewResponse(&api.UpdateFamilyResponse{Trip: toAPITrip(doc)}), nil
}

// AddExpense records a payment by an existing family.
func (s *TripService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	slog.Info("AddExpense request received",
		"trip_id", req.Msg.TripId,
		"family_id", req.Msg.FamilyId,
		"amount", req.Msg.Amount,
	)

	if err := validateName("concept", req.Msg.Concept); err != nil {
		return nil, toConnectError(err)
	}
	amount, err := parseAmount(req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	var expenseID string
	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionExpenseAdded, func(doc *models.TripDocument) error {
		if doc.FindFamily(req.Msg.FamilyId) == nil {
			return invalidf("payer %s is not a family of this trip", req.Msg.FamilyId)
		}
		expenseID = uuid.NewString()
		doc.Expenses = append(doc.Expenses, models.Expense{
			ID:       expenseID,
			Concept:  strings.TrimSpace(req.Msg.Concept),
			Amount:   amount,
			FamilyID: req.Msg.FamilyId,
			Date:     time.Now().UTC(),
			ImageURL: req.Msg.ImageUrl,
		})
		return nil
	})
	if err != nil {
		slog.Error("AddExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense added", "trip_id", doc.ID, "expense_id", expenseID, "amount", amount)

	return connect.NewResponse(&api.AddExpenseResponse{
		Trip:      toAPITrip(doc),
		ExpenseId: expenseID,
	}), nil
}

// DeleteExpense removes an expense by ID.
func (s *TripService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "trip_id", req.Msg.TripId, "expense_id", req.Msg.ExpenseId)

	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionExpenseDeleted, func(doc *models.TripDocument) error {
		for i, e := range doc.Expenses {
			if e.ID == req.Msg.ExpenseId {
				doc.Expenses = append(doc.Expenses[:i], doc.Expenses[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, req.Msg.ExpenseId)
	})
	if err != nil {
		slog.Error("DeleteExpense failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "trip_id", doc.ID, "expense_id", req.Msg.ExpenseId)

	return connect.NewResponse(&api.DeleteExpenseResponse{Trip: toAPITrip(doc)}), nil
}

// SaveTrip replaces the whole document. It is never retried: a version
// conflict means the client edited a stale copy and must reload.
func (s *TripService) SaveTrip(ctx context.Context, req *connect.Request[api.SaveTripRequest]) (*connect.Response[api.SaveTripResponse], error) {
	if req.Msg.Trip == nil {
		return nil, toConnectError(invalidf("trip is required"))
	}
	slog.Info("SaveTrip request received",
		"trip_id", req.Msg.Trip.Id,
		"expected_version", req.Msg.ExpectedVersion,
	)

	doc, err := fromAPITrip(req.Msg.Trip)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.SaveTrip(ctx, doc, req.Msg.ExpectedVersion); err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			s.metrics.VersionConflicts.Inc()
		}
		slog.Warn("SaveTrip failed", "trip_id", doc.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.publish(ctx, doc, events.ActionSaved)
	slog.Info("Trip saved", "trip_id", doc.ID, "version", doc.Version)

	return connect.NewResponse(&api.SaveTripResponse{Trip: toAPITrip(doc)}), nil
}

// GetSettlement computes balances and transfers for the requested method.
func (s *TripService) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	slog.Info("GetSettlement request received", "trip_id", req.Msg.TripId, "method", req.Msg.Method)

	method, err := models.ParseSplitMethod(req.Msg.Method)
	if err != nil {
		return nil, toConnectError(invalidf("%v", err))
	}

	rec, err := s.store.GetTrip(ctx, req.Msg.TripId)
	if err != nil {
		slog.Error("GetSettlement failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	view, err := settlement.Build(rec.Trip, method)
	if err != nil {
		if errors.Is(err, calculator.ErrUnbalanced) {
			s.metrics.IntegrityErrors.Inc()
		}
		slog.Error("GetSettlement failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}
	s.metrics.TransfersPlanned.Add(float64(len(view.Transfers)))

	slog.Info("GetSettlement successful",
		"trip_id", req.Msg.TripId,
		"transfers", len(view.Transfers),
		"orphaned", len(view.OrphanedKeys),
	)

	return connect.NewResponse(toAPISettlement(view)), nil
}

// ToggleSettlement flips a settlement key between paid and unpaid.
// Keys are not checked against the current plan.
func (s *TripService) ToggleSettlement(ctx context.Context, req *connect.Request[api.ToggleSettlementRequest]) (*connect.Response[api.ToggleSettlementResponse], error) {
	slog.Info("ToggleSettlement request received", "trip_id", req.Msg.TripId, "key", req.Msg.Key)

	if strings.TrimSpace(req.Msg.Key) == "" {
		return nil, toConnectError(invalidf("settlement key is required"))
	}

	var settled bool
	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionSettlementToggle, func(doc *models.TripDocument) error {
		doc.SettledTransfers = ledger.Toggle(doc.SettledTransfers, req.Msg.Key)
		settled = ledger.IsSettled(doc.SettledTransfers, req.Msg.Key)
		return nil
	})
	if err != nil {
		slog.Error("ToggleSettlement failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Settlement toggled", "trip_id", doc.ID, "key", req.Msg.Key, "settled", settled)

	return connect.NewResponse(&api.ToggleSettlementResponse{
		Trip:    toAPITrip(doc),
		Settled: settled,
	}), nil
}

// PruneSettlements drops confirmed keys that match no currently planned
// transfer. Admin only.
func (s *TripService) PruneSettlements(ctx context.Context, req *connect.Request[api.PruneSettlementsRequest]) (*connect.Response[api.PruneSettlementsResponse], error) {
	slog.Info("PruneSettlements request received",
		"trip_id", req.Msg.TripId,
		"actor_family_id", req.Msg.ActorFamilyId,
		"method", req.Msg.Method,
	)

	method, err := models.ParseSplitMethod(req.Msg.Method)
	if err != nil {
		return nil, toConnectError(invalidf("%v", err))
	}

	var removed []string
	doc, err := s.mutate(ctx, req.Msg.TripId, events.ActionSettlementsPrune, func(doc *models.TripDocument) error {
		if err := requireAdmin(doc, req.Msg.ActorFamilyId); err != nil {
			return err
		}
		balances := calculator.ComputeBalances(doc.Families, doc.Expenses, method)
		transfers, err := calculator.PlanTransfers(balances)
		if err != nil {
			return err
		}
		removed = ledger.Orphaned(doc.SettledTransfers, transfers)
		if len(removed) == 0 {
			return errNoChange
		}
		doc.SettledTransfers = ledger.Prune(doc.SettledTransfers, transfers)
		return nil
	})
	if err != nil {
		if errors.Is(err, calculator.ErrUnbalanced) {
			s.metrics.IntegrityErrors.Inc()
		}
		slog.Error("PruneSettlements failed", "trip_id", req.Msg.TripId, "error", err)
		return nil, toConnectError(err)
	}
	if removed == nil {
		removed = []string{}
	}

	slog.Info("Settlements pruned", "trip_id", doc.ID, "removed", len(removed))

	return connect.NewResponse(&api.PruneSettlementsResponse{
		Trip:    toAPITrip(doc),
		Removed: removed,
	}), nil
}

// mutate runs a read-modify-write cycle on a trip. apply works on a copy of
// the stored document; the copy is saved with the version that was read.
// A version conflict is retried once with a fresh read.
func (s *TripService) mutate(ctx context.Context, tripID, action string, apply func(doc *models.TripDocument) error) (*models.TripDocument, error) {
	for attempt := 1; ; attempt++ {
		rec, err := s.store.GetTrip(ctx, tripID)
		if err != nil {
			return nil, err
		}

		doc := rec.Trip.Clone()
		if err := apply(doc); err != nil {
			if errors.Is(err, errNoChange) {
				return rec.Trip, nil
			}
			return nil, err
		}

		err = s.store.SaveTrip(ctx, doc, rec.Trip.Version)
		if errors.Is(err, storage.ErrVersionConflict) {
			s.metrics.VersionConflicts.Inc()
			if attempt < 2 {
				slog.Warn("Version conflict, retrying", "trip_id", tripID, "version", rec.Trip.Version)
				continue
			}
		}
		if err != nil {
			return nil, err
		}

		s.publish(ctx, doc, action)
		return doc, nil
	}
}

// publish never fails the RPC; broker problems are only logged.
func (s *TripService) publish(ctx context.Context, doc *models.TripDocument, action string) {
	msg := events.NewTripChanged(doc.ID, doc.Version, action)
	if err := s.publisher.Publish(ctx, msg); err != nil {
		slog.Warn("Failed to publish trip change",
			"trip_id", doc.ID,
			"action", action,
			"error", err,
		)
	}
}

func requireAdmin(doc *models.TripDocument, actorID string) error {
	actor := doc.FindFamily(actorID)
	if actor == nil || !actor.IsAdmin() {
		return fmt.Errorf("%w: %s", ErrNotAdmin, actorID)
	}
	return nil
}
