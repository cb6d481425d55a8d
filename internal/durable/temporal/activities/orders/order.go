package orders

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/logitrack/logitrack/internal/domains/orders/application"
	"github.com/logitrack/logitrack/internal/domains/orders/application/types"
	orderports "github.com/logitrack/logitrack/internal/domains/orders/ports"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

const (
	// PersistOrderActivityName validates, checks references, and stores an order.
	PersistOrderActivityName = "orders.activities.PersistOrder"
)

// Application error types carried across the workflow boundary.
const (
	ValidationErrorType  = "ValidationError"
	NotFoundErrorType    = "NotFoundError"
	ReferentialErrorType = "ReferentialError"
	ConflictErrorType    = "ConflictError"
	PersistenceErrorType = "PersistenceError"
)

// Violation kinds carried in validation error details.
const (
	kindOutOfRange    = "out_of_range"
	kindInvalidFormat = "invalid_format"
)

// FieldViolation is the serializable form of a validation.FieldError.
type FieldViolation struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func toViolations(err error) []FieldViolation {
	fieldErrs := validation.Violations(err)
	out := make([]FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		kind := kindInvalidFormat
		if errors.Is(fe, validation.ErrOutOfRange) {
			kind = kindOutOfRange
		}
		out = append(out, FieldViolation{Field: fe.Field, Kind: kind, Message: fe.Message()})
	}
	return out
}

func (v FieldViolation) fieldError() *validation.FieldError {
	kind := validation.ErrInvalidFormat
	if v.Kind == kindOutOfRange {
		kind = validation.ErrOutOfRange
	}
	return validation.NewFieldError(v.Field, nil, kind, v.Message)
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// PersistOrder runs the create-order use case. Every failure is returned as a
// non-retryable application error so the workflow never replays a write.
func (a *Activities) PersistOrder(ctx context.Context, input types.CreateOrderInput) (*types.OrderProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order persist activity not initialized", "orderId", input.OrderID)
		return nil, temporal.NewNonRetryableApplicationError("order persist activity not initialized", PersistenceErrorType, nil)
	}
	logger.Info("PersistOrder activity started", "orderId", input.OrderID, "lines", len(input.Lines))
	projection, err := a.service.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, ToApplicationError(err)
	}
	logger.Info("PersistOrder activity completed", "orderId", projection.ID)
	return projection, nil
}

// ToApplicationError classifies a service error. Validation failures carry
// their field violations and referential failures carry the missing ids.
func ToApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var unknown *orderapp.UnknownItemsError
	switch {
	case errors.As(err, &unknown):
		return temporal.NewNonRetryableApplicationError(err.Error(), ReferentialErrorType, err, unknown.IDs)
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ValidationErrorType, err, toViolations(err))
	case errors.Is(err, orderapp.ErrNotFound):
		return temporal.NewNonRetryableApplicationError(err.Error(), NotFoundErrorType, err)
	case errors.Is(err, orderapp.ErrAlreadyExists):
		return temporal.NewNonRetryableApplicationError(err.Error(), ConflictErrorType, err)
	default:
		return temporal.NewNonRetryableApplicationError(err.Error(), PersistenceErrorType, err)
	}
}

// FromApplicationError maps a workflow failure back onto the orders error kinds.
func FromApplicationError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case ValidationErrorType:
		var violations []FieldViolation
		var decodeErr error
		if appErr.HasDetails() {
			decodeErr = appErr.Details(&violations)
		}
		errs := []error{orderapp.ErrInvalidInput}
		for _, v := range violations {
			errs = append(errs, v.fieldError())
		}
		if len(violations) == 0 {
			errs = append(errs, errors.New(appErr.Message()))
		}
		if decodeErr != nil {
			errs = append(errs, fmt.Errorf("decode validation details: %w", decodeErr))
		}
		return errors.Join(errs...)
	case ReferentialErrorType:
		var ids []int64
		if appErr.HasDetails() {
			if decodeErr := appErr.Details(&ids); decodeErr != nil {
				return errors.Join(&orderapp.UnknownItemsError{}, fmt.Errorf("decode referential details: %w", decodeErr))
			}
		}
		return &orderapp.UnknownItemsError{IDs: ids}
	case NotFoundErrorType:
		return errors.Join(orderapp.ErrNotFound, errors.New(appErr.Message()))
	case ConflictErrorType:
		return errors.Join(orderapp.ErrAlreadyExists, errors.New(appErr.Message()))
	default:
		return errors.Join(orderapp.ErrPersistence, errors.New(appErr.Message()))
	}
}
