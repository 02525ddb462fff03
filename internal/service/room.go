package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetRoomsByLoginUserID(ctx context.Context, caller *db.User) ([]db.Room, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	memberOf := s.db.Model(&db.RoomMember{}).Select("room_id").Where("user_id = ?", caller.ID)

	rooms := make([]db.Room, 0)
	res := s.db.WithContext(ctx).
		Preload("Members").Preload("Members.User").Preload("Group").
		Where("id IN (?)", memberOf).
		Order("created_at DESC").
		Find(&rooms)
	if res.Error != nil {
		return nil, res.Error
	}
	return rooms, nil
}

// CreateRoom opens a direct-message room between the caller and one partner.
// An existing DM room between the pair is a conflict, not a second room.
func (s *Service) CreateRoom(ctx context.Context, caller *db.User, partnerUserID string) (*db.Room, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}
	if partnerUserID == caller.ID {
		return nil, errors.New("cannot create a room with yourself")
	}

	out := db.Room{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		partner := db.User{}
		if res := tx.Where("id = ?", partnerUserID).First(&partner); res.Error != nil {
			return notFoundOr(res.Error, "user does not exist")
		}

		callerRooms := tx.Model(&db.RoomMember{}).Select("room_id").Where("user_id = ?", caller.ID)
		partnerRooms := tx.Model(&db.RoomMember{}).Select("room_id").Where("user_id = ?", partnerUserID)
		existing := db.Room{}
		res := tx.Where("group_id IS NULL").
			Where("id IN (?)", callerRooms).
			Where("id IN (?)", partnerRooms).
			First(&existing)
		if res.Error == nil {
			return errors.Wrap(apperr.ErrConflict, "room already exists")
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}

		room := db.Room{}
		if res := tx.Create(&room); res.Error != nil {
			return res.Error
		}
		for _, userID := range []string{caller.ID, partnerUserID} {
			member := db.RoomMember{RoomID: room.ID, UserID: userID}
			if res := tx.Create(&member); res.Error != nil {
				return res.Error
			}
		}
		return tx.Preload("Members").Preload("Members.User").Where("id = ?", room.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTargetRoomMember returns the other member of a DM room.
func (s *Service) GetTargetRoomMember(ctx context.Context, caller *db.User, roomID string) (*db.RoomMember, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	members := make([]db.RoomMember, 0)
	res := s.db.WithContext(ctx).Preload("User").Where("room_id = ?", roomID).Find(&members)
	if res.Error != nil {
		return nil, res.Error
	}
	if len(members) == 0 {
		return nil, errors.Wrap(apperr.ErrNotFound, "room does not exist")
	}

	isMember := false
	for i := range members {
		if members[i].UserID == caller.ID {
			isMember = true
			break
		}
	}
	if !isMember {
		return nil, errors.Wrap(apperr.ErrForbidden, "only room members can access the room")
	}

	for i := range members {
		if members[i].UserID != caller.ID {
			return &members[i], nil
		}
	}
	return nil, errors.Wrap(apperr.ErrNotFound, "target member does not exist")
}
