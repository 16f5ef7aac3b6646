package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the operation clashes with existing state, e.g. a
// budget claiming a category that an overlapping budget already claims.
var ErrConflict = errors.New("conflicting resource state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the authenticated user may not act on the resource.
var ErrForbidden = errors.New("forbidden")
