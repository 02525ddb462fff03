// Package service is the resolver layer: one method per exposed operation.
// Every mutation runs its load -> guard -> write sequence inside a single
// database transaction so a failed check never leaves partial state behind.
package service

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/storage"
)

type Service struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	tokens   *auth.TokenService
	uploader *storage.Uploader
}

func NewService(client *gorm.DB, logger *zap.SugaredLogger, tokens *auth.TokenService, uploader *storage.Uploader) *Service {
	return &Service{
		db:       client,
		logger:   logger,
		tokens:   tokens,
		uploader: uploader,
	}
}

// notFoundOr converts a missing-row lookup result into the NotFound kind and
// passes every other store failure through untouched.
func notFoundOr(err error, msg string) error {
	if err == gorm.ErrRecordNotFound {
		return errors.Wrap(apperr.ErrNotFound, msg)
	}
	return err
}

func roomMembership(tx *gorm.DB, roomID, userID string) error {
	member := roomMemberRow{}
	res := tx.Table("room_members").Select("id").
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Take(&member)
	if res.Error == gorm.ErrRecordNotFound {
		return errors.Wrap(apperr.ErrForbidden, "only room members can access the room")
	}
	return res.Error
}

type roomMemberRow struct {
	ID string
}

func (s *Service) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), 14)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *Service) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
