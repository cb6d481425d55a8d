package application

import (
	"errors"
	"fmt"

	"github.com/logitrack/logitrack/internal/domains/orders/ports"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated a field rule. Nothing was read or written.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrUnknownInventoryItem signals an order line referencing an item that does not exist.
	ErrUnknownInventoryItem = errors.New("inventory item does not exist")
	// ErrPersistence wraps any repository failure that is not a domain outcome.
	ErrPersistence = errors.New("order persistence failure")

	ErrNotFound      = ports.ErrNotFound
	ErrAlreadyExists = ports.ErrAlreadyExists
)

// UnknownItemsError lists every missing inventory id of a rejected order.
type UnknownItemsError struct {
	IDs []int64
}

func (e *UnknownItemsError) Error() string {
	if len(e.IDs) == 1 {
		return fmt.Sprintf("inventory item with id %d does not exist", e.IDs[0])
	}
	return fmt.Sprintf("inventory items with ids %v do not exist", e.IDs)
}

func (e *UnknownItemsError) Unwrap() error { return ErrUnknownInventoryItem }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var missing *ports.MissingItemsError
	switch {
	case errors.As(err, &missing):
		return &UnknownItemsError{IDs: missing.IDs}
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrPersistence),
		errors.Is(err, ErrUnknownInventoryItem):
		return err
	case errors.Is(err, validation.ErrOutOfRange), errors.Is(err, validation.ErrInvalidFormat):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrAlreadyExists):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
