package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Posting engine failures. Every kind is distinguishable with errors.Is so the
// HTTP layer can map it to a 4xx response.
var (
	// ErrInvalidRange is returned when a tax rate falls outside [0, 1].
	ErrInvalidRange = fmt.Errorf("%w: tax rate out of range", ErrValidation)
	// ErrInvalidTaxRate is returned by the totals engine for a line with a rate outside [0, 1].
	ErrInvalidTaxRate = fmt.Errorf("%w: invalid tax rate", ErrValidation)
	// ErrInvalidDiscount is returned when a line discount is negative or exceeds the line subtotal.
	ErrInvalidDiscount = fmt.Errorf("%w: invalid discount", ErrValidation)
	// ErrInvalidQuantity covers negative quantities and unit prices.
	ErrInvalidQuantity = fmt.Errorf("%w: invalid quantity or unit price", ErrValidation)
	// ErrRoundingMismatch is returned when a recomputed total differs from the stored one.
	ErrRoundingMismatch = errors.New("recomputed total does not match stored total")
	// ErrMissingTaxAccount is returned when a nonzero tax amount has no tax account to post to.
	ErrMissingTaxAccount = errors.New("tax account is required when tax amount is nonzero")
	// ErrMissingCogsAccounts is returned when nonzero COGS lacks the COGS or inventory asset account.
	ErrMissingCogsAccounts = errors.New("cogs and inventory asset accounts are required when cogs is nonzero")
	// ErrUnbalancedJournal is returned when debits and credits differ.
	ErrUnbalancedJournal = errors.New("journal debits do not equal credits")
	// ErrExhaustedCodeRange is returned when no free account code is left in the configured range.
	ErrExhaustedCodeRange = errors.New("no free account code in range")
	// ErrDuplicateCode is returned by the store when an account code is already taken.
	ErrDuplicateCode = fmt.Errorf("%w: account code already in use", ErrDuplicate)
	// ErrAlreadyPosted is returned when a document already has a journal entry.
	ErrAlreadyPosted = fmt.Errorf("%w: document already posted", ErrDuplicate)
	// ErrLockHeld is returned when another posting holds the document lock.
	ErrLockHeld = errors.New("posting lock is held by another operation")
	// ErrLockUnavailable is returned when the lock service cannot be reached.
	ErrLockUnavailable = errors.New("posting lock service unavailable")
)

// AppError carries an HTTP-ish status code alongside an underlying error.
// Adapters use it for infrastructure failures that callers should not inspect further.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	var appErr *AppError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrLockHeld):
		return http.StatusConflict
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrMissingTaxAccount),
		errors.Is(err, ErrMissingCogsAccounts),
		errors.Is(err, ErrExhaustedCodeRange):
		return http.StatusBadRequest
	case errors.Is(err, ErrRoundingMismatch), errors.Is(err, ErrUnbalancedJournal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrLockUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &appErr) && appErr.Code > 0:
		return appErr.Code
	default:
		return http.StatusInternalServerError
	}
}
