package middleware

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"

	"github.com/david-rodelgo/gastoscompartidos/internal/auth"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
	"github.com/david-rodelgo/gastoscompartidos/pkg/api/apiconnect"
)

// TripKeyHeader carries a trip's access key for clients without a token.
const TripKeyHeader = "X-Trip-Key"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// TripIDKey is the context key for the trip the caller was authorised for.
const TripIDKey contextKey = "trip_id"

// tripScoped is implemented by every request that addresses an existing trip.
type tripScoped interface {
	GetTripId() string
}

// GetTripID extracts the authorised trip ID from the context.
// Returns empty string if not found.
func GetTripID(ctx context.Context) string {
	tripID, _ := ctx.Value(TripIDKey).(string)
	return tripID
}

// publicProcedures authenticate themselves or need no trip.
var publicProcedures = map[string]bool{
	apiconnect.TripServiceCreateTripProcedure: true,
	apiconnect.TripServiceOpenTripProcedure:   true,
}

// RequireTripAccess returns an interceptor that admits a request only if the
// caller holds a session token for the addressed trip or presents its
// access key in the X-Trip-Key header.
func RequireTripAccess(store storage.TripStore, tokens *auth.TokenManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if publicProcedures[req.Spec().Procedure] {
				return next(ctx, req)
			}

			msg, ok := req.Any().(tripScoped)
			if !ok {
				return next(ctx, req)
			}
			tripID := msg.GetTripId()
			if tripID == "" {
				return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("trip id is required"))
			}

			if authHeader := req.Header().Get("Authorization"); authHeader != "" {
				tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
				if !found || tokenString == "" {
					return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
				}
				claims, err := tokens.Validate(tokenString)
				if err != nil {
					return nil, connect.NewError(connect.CodeUnauthenticated, err)
				}
				if claims.TripID != tripID {
					return nil, connect.NewError(connect.CodePermissionDenied, errors.New("token was issued for another trip"))
				}
				return next(context.WithValue(ctx, TripIDKey, tripID), req)
			}

			key := req.Header().Get(TripKeyHeader)
			if key == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}
			rec, err := store.GetTrip(ctx, tripID)
			if errors.Is(err, storage.ErrNotFound) {
				return nil, connect.NewError(connect.CodeNotFound, err)
			}
			if err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			if err := auth.CheckAccessKey(rec.AccessKeyHash, key); err != nil {
				return nil, connect.NewError(connect.CodePermissionDenied, err)
			}
			return next(context.WithValue(ctx, TripIDKey, tripID), req)
		}
	}
}
