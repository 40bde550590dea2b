package apiconnect

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/david-rodelgo/gastoscompartidos/pkg/api"
)

// TripServiceClient is a client for trips.v1.TripService.
type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error)
	OpenTrip(context.Context, *connect.Request[api.OpenTripRequest]) (*connect.Response[api.OpenTripResponse], error)
	GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error)
	JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error)
	AddFamily(context.Context, *connect.Request[api.AddFamilyRequest]) (*connect.Response[api.AddFamilyResponse], error)
	UpdateFamily(context.Context, *connect.Request[api.UpdateFamilyRequest]) (*connect.Response[api.UpdateFamilyResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	SaveTrip(context.Context, *connect.Request[api.SaveTripRequest]) (*connect.Response[api.SaveTripResponse], error)
	GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error)
	ToggleSettlement(context.Context, *connect.Request[api.ToggleSettlementRequest]) (*connect.Response[api.ToggleSettlementResponse], error)
	PruneSettlements(context.Context, *connect.Request[api.PruneSettlementsRequest]) (*connect.Response[api.PruneSettlementsResponse], error)
}

// NewTripServiceClient constructs a client for the service at baseURL
// (e.g., http://localhost:8080). Requests are JSON encoded.
func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(JSONCodec{})}, opts...)
	return &tripServiceClient{
		createTrip:       connect.NewClient[api.CreateTripRequest, api.CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		openTrip:         connect.NewClient[api.OpenTripRequest, api.OpenTripResponse](httpClient, baseURL+TripServiceOpenTripProcedure, opts...),
		getTrip:          connect.NewClient[api.GetTripRequest, api.GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		joinTrip:         connect.NewClient[api.JoinTripRequest, api.JoinTripResponse](httpClient, baseURL+TripServiceJoinTripProcedure, opts...),
		addFamily:        connect.NewClient[api.AddFamilyRequest, api.AddFamilyResponse](httpClient, baseURL+TripServiceAddFamilyProcedure, opts...),
		updateFamily:     connect.NewClient[api.UpdateFamilyRequest, api.UpdateFamilyResponse](httpClient, baseURL+TripServiceUpdateFamilyProcedure, opts...),
		addExpense:       connect.NewClient[api.AddExpenseRequest, api.AddExpenseResponse](httpClient, baseURL+TripServiceAddExpenseProcedure, opts...),
		deleteExpense:    connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+TripServiceDeleteExpenseProcedure, opts...),
		saveTrip:         connect.NewClient[api.SaveTripRequest, api.SaveTripResponse](httpClient, baseURL+TripServiceSaveTripProcedure, opts...),
		getSettlement:    connect.NewClient[api.GetSettlementRequest, api.GetSettlementResponse](httpClient, baseURL+TripServiceGetSettlementProcedure, opts...),
		toggleSettlement: connect.NewClient[api.ToggleSettlementRequest, api.ToggleSettlementResponse](httpClient, baseURL+TripServiceToggleSettlementProcedure, opts...),
		pruneSettlements: connect.NewClient[api.PruneSettlementsRequest, api.PruneSettlementsResponse](httpClient, baseURL+TripServicePruneSettlementsProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip       *connect.Client[api.CreateTripRequest, api.CreateTripResponse]
	openTrip         *connect.Client[api.OpenTripRequest, api.OpenTripResponse]
	getTrip          *connect.Client[api.GetTripRequest, api.GetTripResponse]
	joinTrip         *connect.Client[api.JoinTripRequest, api.JoinTripResponse]
	addFamily        *connect.Client[api.AddFamilyRequest, api.AddFamilyResponse]
	updateFamily     *connect.Client[api.UpdateFamilyRequest, api.UpdateFamilyResponse]
	addExpense       *connect.Client[api.AddExpenseRequest, api.AddExpenseResponse]
	deleteExpense    *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	saveTrip         *connect.Client[api.SaveTripRequest, api.SaveTripResponse]
	getSettlement    *connect.Client[api.GetSettlementRequest, api.GetSettlementResponse]
	toggleSettlement *connect.Client[api.ToggleSettlementRequest, api.ToggleSettlementResponse]
	pruneSettlements *connect.Client[api.PruneSettlementsRequest, api.PruneSettlementsResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) OpenTrip(ctx context.Context, req *connect.Request[api.OpenTripRequest]) (*connect.Response[api.OpenTripResponse], error) {
	return c.openTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) JoinTrip(ctx context.Context, req *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	return c.joinTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddFamily(ctx context.Context, req *connect.Request[api.AddFamilyRequest]) (*connect.Response[api.AddFamilyResponse], error) {
	return c.addFamily.CallUnary(ctx, req)
}

func (c *tripServiceClient) UpdateFamily(ctx context.Context, req *connect.Request[api.UpdateFamilyRequest]) (*connect.Response[api.UpdateFamilyResponse], error) {
	return c.updateFamily.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *tripServiceClient) SaveTrip(ctx context.Context, req *connect.Request[api.SaveTripRequest]) (*connect.Response[api.SaveTripResponse], error) {
	return c.saveTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetSettlement(ctx context.Context, req *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return c.getSettlement.CallUnary(ctx, req)
}

func (c *tripServiceClient) ToggleSettlement(ctx context.Context, req *connect.Request[api.ToggleSettlementRequest]) (*connect.Response[api.ToggleSettlementResponse], error) {
	return c.toggleSettlement.CallUnary(ctx, req)
}

func (c *tripServiceClient) PruneSettlements(ctx context.Context, req *connect.Request[api.PruneSettlementsRequest]) (*connect.Response[api.PruneSettlementsResponse], error) {
	return c.pruneSettlements.CallUnary(ctx, req)
}
