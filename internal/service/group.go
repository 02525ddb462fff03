package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

type (
	CreateGroupInput struct {
		Name        string
		Description string
		Image       *string
	}

	UpdateGroupInput struct {
		Name        *string
		Description *string
		Image       *string
	}
)

func (s *Service) GetGroup(ctx context.Context, id string) (*db.Group, error) {
	group := db.Group{}
	res := s.db.WithContext(ctx).Preload("AdminUser").Where("id = ?", id).First(&group)
	if res.Error != nil {
		return nil, notFoundOr(res.Error, "group does not exist")
	}
	return &group, nil
}

// CreateGroup also creates the group room and the admin's membership rows so
// a fresh group is immediately usable.
func (s *Service) CreateGroup(ctx context.Context, caller *db.User, input CreateGroupInput) (*db.Group, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	group := db.Group{
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		AdminUserID: caller.ID,
		ProductID:   uuid.NewString(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Create(&group); res.Error != nil {
			return res.Error
		}
		room := db.Room{GroupID: &group.ID}
		if res := tx.Create(&room); res.Error != nil {
			return res.Error
		}
		member := db.RoomMember{RoomID: room.ID, UserID: caller.ID}
		if res := tx.Create(&member); res.Error != nil {
			return res.Error
		}
		relation := db.UserGroupRelation{UserID: caller.ID, GroupID: group.ID}
		return tx.Create(&relation).Error
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Service) UpdateGroup(ctx context.Context, caller *db.User, id string, input UpdateGroupInput) (*db.Group, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Group{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group := db.Group{}
		if res := tx.Where("id = ?", id).First(&group); res.Error != nil {
			return notFoundOr(res.Error, "group does not exist")
		}
		if err := auth.Authorize(caller, group.AdminUserID); err != nil {
			return errors.Wrap(err, "only the admin can update the group")
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Image != nil {
			updates["image"] = *input.Image
		}
		if len(updates) != 0 {
			if res := tx.Model(&group).Updates(updates); res.Error != nil {
				return res.Error
			}
		}
		return tx.Preload("AdminUser").Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeleteGroup(ctx context.Context, caller *db.User, id string) (*db.Group, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Group{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Preload("AdminUser").Where("id = ?", id).First(&out); res.Error != nil {
			return notFoundOr(res.Error, "group does not exist")
		}
		if err := auth.Authorize(caller, out.AdminUserID); err != nil {
			return errors.Wrap(err, "only the admin can delete the group")
		}
		return tx.Delete(&db.Group{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
