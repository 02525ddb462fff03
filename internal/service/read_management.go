package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetReadManagement(ctx context.Context, caller *db.User, targetUserID, messageID string) (*db.ReadManagement, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	rm := db.ReadManagement{}
	res := s.db.WithContext(ctx).
		Where("target_user_id = ? AND message_id = ?", targetUserID, messageID).
		First(&rm)
	if res.Error != nil {
		return nil, notFoundOr(res.Error, "read management does not exist")
	}
	return &rm, nil
}

// UpdateReadManagement is the only transition the read state exposes:
// unread -> read, forced to true, never reversed. Repeat calls are no-ops.
func (s *Service) UpdateReadManagement(ctx context.Context, caller *db.User, targetUserID, messageID string) (*db.ReadManagement, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.ReadManagement{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rm := db.ReadManagement{}
		res := tx.Where("target_user_id = ? AND message_id = ?", targetUserID, messageID).First(&rm)
		if res.Error != nil {
			return notFoundOr(res.Error, "read management does not exist")
		}
		if err := auth.Authorize(caller, targetUserID); err != nil {
			return errors.Wrap(err, "users can only update their own read state")
		}
		if res := tx.Model(&rm).Update("is_read", true); res.Error != nil {
			return res.Error
		}
		return tx.Where("id = ?", rm.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
