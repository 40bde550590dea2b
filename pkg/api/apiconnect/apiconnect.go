// Package apiconnect wires trips.v1.TripService to connect-go: procedure
// names, handler registration and a typed client.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/david-rodelgo/gastoscompartidos/pkg/api"
)

// TripServiceName is the fully-qualified name of the service.
const TripServiceName = "trips.v1.TripService"

const (
	TripServiceCreateTripProcedure       = "/trips.v1.TripService/CreateTrip"
	TripServiceOpenTripProcedure         = "/trips.v1.TripService/OpenTrip"
	TripServiceGetTripProcedure          = "/trips.v1.TripService/GetTrip"
	TripServiceJoinTripProcedure         = "/trips.v1.TripService/JoinTrip"
	TripServiceAddFamilyProcedure        = "/trips.v1.TripService/AddFamily"
	TripServiceUpdateFamilyProcedure     = "/trips.v1.TripService/UpdateFamily"
	TripServiceAddExpenseProcedure       = "/trips.v1.TripService/AddExpense"
	TripServiceDeleteExpenseProcedure    = "/trips.v1.TripService/DeleteExpense"
	TripServiceSaveTripProcedure         = "/trips.v1.TripService/SaveTrip"
	TripServiceGetSettlementProcedure    = "/trips.v1.TripService/GetSettlement"
	TripServiceToggleSettlementProcedure = "/trips.v1.TripService/ToggleSettlement"
	TripServicePruneSettlementsProcedure = "/trips.v1.TripService/PruneSettlements"
)

// IsTripServiceProcedure reports whether path belongs to the service.
func IsTripServiceProcedure(path string) bool {
	return strings.HasPrefix(path, "/"+TripServiceName+"/")
}

// TripServiceHandler is implemented by the server.
type TripServiceHandler interface {
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

// NewTripServiceHandler builds an HTTP handler for every procedure of svc.
// The returned path is the mount prefix for an http.ServeMux.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(JSONCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceOpenTripProcedure, connect.NewUnaryHandler(TripServiceOpenTripProcedure, svc.OpenTrip, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceJoinTripProcedure, connect.NewUnaryHandler(TripServiceJoinTripProcedure, svc.JoinTrip, opts...))
	mux.Handle(TripServiceAddFamilyProcedure, connect.NewUnaryHandler(TripServiceAddFamilyProcedure, svc.AddFamily, opts...))
	mux.Handle(TripServiceUpdateFamilyProcedure, connect.NewUnaryHandler(TripServiceUpdateFamilyProcedure, svc.UpdateFamily, opts...))
	mux.Handle(TripServiceAddExpenseProcedure, connect.NewUnaryHandler(TripServiceAddExpenseProcedure, svc.AddExpense, opts...))
	mux.Handle(TripServiceDeleteExpenseProcedure, connect.NewUnaryHandler(TripServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...))
	mux.Handle(TripServiceSaveTripProcedure, connect.NewUnaryHandler(TripServiceSaveTripProcedure, svc.SaveTrip, opts...))
	mux.Handle(TripServiceGetSettlementProcedure, connect.NewUnaryHandler(TripServiceGetSettlementProcedure, svc.GetSettlement, opts...))
	mux.Handle(TripServiceToggleSettlementProcedure, connect.NewUnaryHandler(TripServiceToggleSettlementProcedure, svc.ToggleSettlement, opts...))
	mux.Handle(TripServicePruneSettlementsProcedure, connect.NewUnaryHandler(TripServicePruneSettlementsProcedure, svc.PruneSettlements, opts...))

	return "/" + TripServiceName + "/", mux
}

// UnimplementedTripServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedTripServiceHandler struct{}

func unimplemented(name string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(TripServiceName+"."+name+" is not implemented"))
}

func (UnimplementedTripServiceHandler) CreateTrip(context.Context, *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	return nil, unimplemented("CreateTrip")
}

func (UnimplementedTripServiceHandler) OpenTrip(context.Context, *connect.Request[api.OpenTripRequest]) (*connect.Response[api.OpenTripResponse], error) {
	return nil, unimplemented("OpenTrip")
}

func (UnimplementedTripServiceHandler) GetTrip(context.Context, *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	return nil, unimplemented("GetTrip")
}

func (UnimplementedTripServiceHandler) JoinTrip(context.Context, *connect.Request[api.JoinTripRequest]) (*connect.Response[api.JoinTripResponse], error) {
	return nil, unimplemented("JoinTrip")
}

func (UnimplementedTripServiceHandler) AddFamily(context.Context, *connect.Request[api.AddFamilyRequest]) (*connect.Response[api.AddFamilyResponse], error) {
	return nil, unimplemented("AddFamily")
}

func (UnimplementedTripServiceHandler) UpdateFamily(context.Context, *connect.Request[api.UpdateFamilyRequest]) (*connect.Response[api.UpdateFamilyResponse], error) {
	return nil, unimplemented("UpdateFamily")
}

func (UnimplementedTripServiceHandler) AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	return nil, unimplemented("AddExpense")
}

func (UnimplementedTripServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return nil, unimplemented("DeleteExpense")
}

func (UnimplementedTripServiceHandler) SaveTrip(context.Context, *connect.Request[api.SaveTripRequest]) (*connect.Response[api.SaveTripResponse], error) {
	return nil, unimplemented("SaveTrip")
}

func (UnimplementedTripServiceHandler) GetSettlement(context.Context, *connect.Request[api.GetSettlementRequest]) (*connect.Response[api.GetSettlementResponse], error) {
	return nil, unimplemented("GetSettlement")
}

func (UnimplementedTripServiceHandler) ToggleSettlement(context.Context, *connect.Request[api.ToggleSettlementRequest]) (*connect.Response[api.ToggleSettlementResponse], error) {
	return nil, unimplemented("ToggleSettlement")
}

func (UnimplementedTripServiceHandler) PruneSettlements(context.Context, *connect.Request[api.PruneSettlementsRequest]) (*connect.Response[api.PruneSettlementsResponse], error) {
	return nil, unimplemented("PruneSettlements")
}
