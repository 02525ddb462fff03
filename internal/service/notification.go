package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetNotifications(ctx context.Context, caller *db.User) ([]db.Notification, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	notifications := make([]db.Notification, 0)
	res := s.db.WithContext(ctx).
		Where("target_user_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&notifications)
	if res.Error != nil {
		return nil, res.Error
	}
	return notifications, nil
}

func (s *Service) CheckNotification(ctx context.Context, caller *db.User, id string) (*db.Notification, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Notification{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		notification := db.Notification{}
		if res := tx.Where("id = ?", id).First(&notification); res.Error != nil {
			return notFoundOr(res.Error, "notification does not exist")
		}
		if err := auth.Authorize(caller, notification.TargetUserID); err != nil {
			return errors.Wrap(err, "users can only check their own notifications")
		}
		if res := tx.Model(&notification).Update("is_checked", true); res.Error != nil {
			return res.Error
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
