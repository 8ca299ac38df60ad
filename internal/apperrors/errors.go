package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrNoTokenOnFile indicates the user never completed the provider authorization exchange.
var ErrNoTokenOnFile = errors.New("no provider token on file")

// ErrRefreshRejected indicates the provider refused the refresh grant.
// The stored refresh token may be permanently invalid; callers must not retry blindly.
var ErrRefreshRejected = errors.New("provider rejected the refresh grant")

// ErrProviderUnreachable indicates the provider could not be reached before the deadline.
var ErrProviderUnreachable = errors.New("provider unreachable")
