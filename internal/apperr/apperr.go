// Package apperr holds the error kinds every operation maps onto. Call sites
// wrap these with context; transport translates them into response codes.
package apperr

import (
	"github.com/pkg/errors"
)

var (
	ErrUnauthenticated = errors.New("login user does not exist")
	ErrNotFound        = errors.New("resource does not exist")
	ErrForbidden       = errors.New("operation is not allowed for this user")
	ErrConflict        = errors.New("resource already exists")
)
