package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but belongs to another company,
// so callers cannot probe for records outside their tenant.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the actor lacks the role or ownership required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates the resource is not in a state that allows the requested transition.
var ErrConflict = errors.New("invalid state for operation")

// ErrInsufficientBalance indicates a subtract adjustment would drive a float balance negative.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrPlanRestricted indicates the company's subscription plan does not include the feature.
var ErrPlanRestricted = errors.New("feature not available on current plan")

// ErrReferenceGeneration indicates the reference collision retry budget was exhausted.
// Should never fire in practice; treat as an operational alarm, not a user error.
var ErrReferenceGeneration = errors.New("could not generate a unique transaction reference")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")
