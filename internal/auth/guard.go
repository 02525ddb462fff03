package auth

import (
	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/db"
)

// Require rejects anonymous callers. Mutations call it before touching the
// store so the presence check always precedes existence checks.
func Require(caller *db.User) error {
	if caller == nil {
		return apperr.ErrUnauthenticated
	}
	return nil
}

// Authorize is the single ownership predicate used by every mutation on an
// owned entity. ownerID is the owner column of the target, or of its parent
// when the target has none of its own (TagPostRelation inherits from Post).
func Authorize(caller *db.User, ownerID string) error {
	if err := Require(caller); err != nil {
		return err
	}
	if caller.ID != ownerID {
		return apperr.ErrForbidden
	}
	return nil
}
