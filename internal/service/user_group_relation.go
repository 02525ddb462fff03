package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetUserGroupRelations(ctx context.Context, userID, groupID *string) ([]db.UserGroupRelation, error) {
	query := map[string]interface{}{}
	if userID != nil {
		query["user_id"] = *userID
	}
	if groupID != nil {
		query["group_id"] = *groupID
	}

	relations := make([]db.UserGroupRelation, 0)
	res := s.db.WithContext(ctx).
		Preload("User").Preload("Group").
		Where(query).
		Order("created_at").
		Find(&relations)
	if res.Error != nil {
		return nil, res.Error
	}
	return relations, nil
}

func (s *Service) CreateUserGroupRelation(ctx context.Context, caller *db.User, userID, groupID string) (*db.UserGroupRelation, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.UserGroupRelation{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := db.User{}
		if res := tx.Where("id = ?", userID).First(&user); res.Error != nil && res.Error != gorm.ErrRecordNotFound {
			return res.Error
		} else if res.Error == gorm.ErrRecordNotFound {
			return errors.Wrap(apperr.ErrNotFound, "user or group does not exist")
		}

		group := db.Group{}
		if res := tx.Where("id = ?", groupID).First(&group); res.Error != nil && res.Error != gorm.ErrRecordNotFound {
			return res.Error
		} else if res.Error == gorm.ErrRecordNotFound {
			return errors.Wrap(apperr.ErrNotFound, "user or group does not exist")
		}

		if err := auth.Authorize(caller, userID); err != nil {
			return errors.Wrap(err, "users can only join a group themselves")
		}

		existing := db.UserGroupRelation{}
		res := tx.Where("user_id = ? AND group_id = ?", userID, groupID).First(&existing)
		if res.Error == nil {
			return errors.Wrap(apperr.ErrConflict, "user is already a group member")
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}

		relation := db.UserGroupRelation{UserID: userID, GroupID: groupID}
		if res := tx.Create(&relation); res.Error != nil {
			return res.Error
		}

		// joining the group also joins its room
		room := db.Room{}
		res = tx.Where("group_id = ?", groupID).First(&room)
		if res.Error == nil {
			member := db.RoomMember{RoomID: room.ID, UserID: userID}
			if res := tx.Create(&member); res.Error != nil {
				return res.Error
			}
		} else if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}

		return tx.Preload("User").Preload("Group").Where("id = ?", relation.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUserGroupRelation is allowed to the member themselves and to the
// group admin (who can remove members).
func (s *Service) DeleteUserGroupRelation(ctx context.Context, caller *db.User, userID, groupID string) (*db.UserGroupRelation, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.UserGroupRelation{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Preload("User").Preload("Group").
			Where("user_id = ? AND group_id = ?", userID, groupID).
			First(&out)
		if res.Error != nil {
			return notFoundOr(res.Error, "userGroupRelation does not exist")
		}
		if err := auth.Authorize(caller, out.UserID); err != nil {
			if err := auth.Authorize(caller, out.Group.AdminUserID); err != nil {
				return errors.Wrap(err, "only the member or the admin can remove a membership")
			}
		}
		if res := tx.Delete(&db.UserGroupRelation{}, "id = ?", out.ID); res.Error != nil {
			return res.Error
		}

		room := db.Room{}
		res = tx.Where("group_id = ?", groupID).First(&room)
		if res.Error == nil {
			return tx.Delete(&db.RoomMember{}, "room_id = ? AND user_id = ?", room.ID, userID).Error
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
