// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"

	"github.com/oggyb/muzz-discovery/internal/domain"
)

// Domain is the ErrorInfo domain attached to every mapped status.
const Domain = "discovery.muzz"

// Stable machine-readable reasons carried in google.rpc.ErrorInfo.
const (
	ReasonInvalidFilter   = "INVALID_FILTER"
	ReasonMissingLocation = "MISSING_LOCATION"
	ReasonUnsupportedSort = "UNSUPPORTED_SORT"
	ReasonStaleCursor     = "STALE_CURSOR"
	ReasonDuplicateSwipe  = "DUPLICATE_SWIPE"
	ReasonInvalidRequest  = "INVALID_REQUEST"
	ReasonNotFound        = "NOT_FOUND"
)

var domainErrors = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{domain.ErrInvalidFilter, codes.InvalidArgument, ReasonInvalidFilter},
	{domain.ErrUnsupportedSort, codes.InvalidArgument, ReasonUnsupportedSort},
	{domain.ErrInvalidRequest, codes.InvalidArgument, ReasonInvalidRequest},
	{domain.ErrMissingLocation, codes.FailedPrecondition, ReasonMissingLocation},
	{domain.ErrStaleCursor, codes.FailedPrecondition, ReasonStaleCursor},
	{domain.ErrDuplicateSwipe, codes.AlreadyExists, ReasonDuplicateSwipe},
}

// Map converts domain/repo/infra errors into gRPC-friendly status errors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	for _, d := range domainErrors {
		if errors.Is(err, d.err) {
			return withReason(d.code, err.Error(), d.reason)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return withReason(codes.NotFound, "record not found", ReasonNotFound)

	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "request timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request was canceled")

	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}

// Reason extracts the ErrorInfo reason from a status error, or "".
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}

// InvalidArgument creates a gRPC InvalidArgument error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return withReason(codes.InvalidArgument, msg, ReasonInvalidRequest)
}

// AlreadyExists creates a gRPC AlreadyExists error.
func AlreadyExists(msg string) error {
	return withReason(codes.AlreadyExists, msg, ReasonDuplicateSwipe)
}

func withReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: Domain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
