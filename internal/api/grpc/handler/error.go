package handler

import (
	"errors"
	"time"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/kioskauth-server/internal/model"
)

const errorDomain = "kioskauth"

var kindCodes = map[model.ErrorKind]codes.Code{
	model.KindNoFaceDetected:       codes.InvalidArgument,
	model.KindInvalidRequest:       codes.InvalidArgument,
	model.KindExtractorUnavailable: codes.Unavailable,
	model.KindUnmatched:            codes.Unauthenticated,
	model.KindAccountLocked:        codes.PermissionDenied,
	model.KindAccountInactive:      codes.PermissionDenied,
	model.KindDeviceNotAuthorized:  codes.PermissionDenied,
	model.KindNoTerminalsBound:     codes.FailedPrecondition,
	model.KindRoleNotEnrollable:    codes.FailedPrecondition,
	model.KindInvalidDescriptor:    codes.FailedPrecondition,
	model.KindTerminalThrottled:    codes.ResourceExhausted,
}

// handleError converts service errors into gRPC statuses. Authentication
// failures carry an ErrorInfo detail whose reason is the failure kind.
func handleError(err error) error {
	if authErr, ok := model.AsAuthError(err); ok {
		code, known := kindCodes[authErr.Kind]
		if !known {
			code = codes.Internal
		}

		info := &errdetails.ErrorInfo{
			Reason: string(authErr.Kind),
			Domain: errorDomain,
		}
		if authErr.LockUntil != nil {
			info.Metadata = map[string]string{
				"lock_until": authErr.LockUntil.UTC().Format(time.RFC3339),
			}
		}

		st := status.New(code, authErr.Message)
		if detailed, derr := st.WithDetails(info); derr == nil {
			st = detailed
		}
		return st.Err()
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, model.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
