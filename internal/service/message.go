package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetMessages(ctx context.Context, caller *db.User, roomID string) ([]db.Message, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	room := db.Room{}
	if res := s.db.WithContext(ctx).Where("id = ?", roomID).First(&room); res.Error != nil {
		return nil, notFoundOr(res.Error, "room does not exist")
	}
	if err := roomMembership(s.db.WithContext(ctx), roomID, caller.ID); err != nil {
		return nil, err
	}

	messages := make([]db.Message, 0)
	res := s.db.WithContext(ctx).
		Preload("User").
		Where("room_id = ?", roomID).
		Order("created_at").
		Find(&messages)
	if res.Error != nil {
		return nil, res.Error
	}
	return messages, nil
}

// CreateMessage fans out an unread ReadManagement row and a Notification to
// every other room member in the same transaction as the message itself.
func (s *Service) CreateMessage(ctx context.Context, caller *db.User, roomID, body string) (*db.Message, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Message{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room := db.Room{}
		if res := tx.Where("id = ?", roomID).First(&room); res.Error != nil {
			return notFoundOr(res.Error, "room does not exist")
		}
		if err := roomMembership(tx, roomID, caller.ID); err != nil {
			return err
		}

		message := db.Message{
			RoomID: roomID,
			UserID: caller.ID,
			Body:   body,
		}
		if res := tx.Create(&message); res.Error != nil {
			return res.Error
		}

		members := make([]db.RoomMember, 0)
		if res := tx.Where("room_id = ?", roomID).Find(&members); res.Error != nil {
			return res.Error
		}
		for i := range members {
			if members[i].UserID == caller.ID {
				continue
			}
			rm := db.ReadManagement{
				TargetUserID: members[i].UserID,
				MessageID:    message.ID,
			}
			if res := tx.Create(&rm); res.Error != nil {
				return res.Error
			}
			notification := db.Notification{
				TargetUserID: members[i].UserID,
				Message:      fmt.Sprintf("New message from %s", caller.Name),
				URL:          "/rooms/" + roomID,
			}
			if res := tx.Create(&notification); res.Error != nil {
				return res.Error
			}
		}

		return tx.Preload("User").Where("id = ?", message.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
