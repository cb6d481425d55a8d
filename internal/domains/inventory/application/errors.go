package application

import (
	"errors"
	"fmt"

	"github.com/logitrack/logitrack/internal/domains/inventory/ports"
	"github.com/logitrack/logitrack/internal/shared/validation"
)

var (
	// ErrInvalidInput signals the request violated a field rule. Nothing was read or written.
	ErrInvalidInput = errors.New("invalid inventory input")
	// ErrPersistence wraps any repository failure that is not a domain outcome.
	ErrPersistence = errors.New("inventory persistence failure")

	ErrNotFound      = ports.ErrNotFound
	ErrAlreadyExists = ports.ErrAlreadyExists
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPersistence):
		return err
	case errors.Is(err, validation.ErrOutOfRange), errors.Is(err, validation.ErrInvalidFormat):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, ports.ErrAlreadyExists):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
}
