package service

import (
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/david-rodelgo/gastoscompartidos/internal/auth"
	"github.com/david-rodelgo/gastoscompartidos/internal/calculator"
	"github.com/david-rodelgo/gastoscompartidos/internal/storage"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotAdmin        = errors.New("acting family is not an admin")
	ErrFamilyNotFound  = errors.New("family not found")
	ErrFamilyExists    = errors.New("a family with that name already exists")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrCreatorRole     = errors.New("the trip creator must keep the ADMIN role")
)

// errNoChange aborts a mutation without saving. The current document is
// returned to the caller as if the save had succeeded.
var errNoChange = errors.New("no change")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// toConnectError maps domain and storage errors to connect codes.
func toConnectError(err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, ErrFamilyNotFound),
		errors.Is(err, ErrExpenseNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrAlreadyExists), errors.Is(err, ErrFamilyExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, storage.ErrVersionConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, auth.ErrInvalidAccessKey), errors.Is(err, ErrNotAdmin):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, auth.ErrMissingAccessKey),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, ErrCreatorRole):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, calculator.ErrUnbalanced):
		return connect.NewError(connect.CodeDataLoss, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
