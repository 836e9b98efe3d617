package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/fitscore/internal/ats"
	"github.com/jonathan/fitscore/internal/features"
	"github.com/jonathan/fitscore/internal/scoring"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNoCatalog indicates a rank request without jobs on a server with no catalog source.
var ErrNoCatalog = errors.New("no jobs in request and no catalog configured")

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var inputErr *features.ValidationError
	var cfgErr *scoring.ConfigurationError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs), errors.As(err, &inputErr),
		errors.Is(err, ats.ErrEmptyResume), errors.Is(err, ErrNoCatalog):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fromValidator converts the first failing field of a validator error into an ErrValidation.
func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &ErrValidation{Field: fe.Namespace(), Message: fmt.Sprintf("failed on %q", fe.Tag())}
}
