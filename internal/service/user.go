package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

type UpdateUserInput struct {
	Name        *string
	Description *string
	IconImage   *string
}

func (s *Service) Register(ctx context.Context, name, email, password string) (*db.User, string, error) {
	hash, err := s.bcryptGen(password)
	if err != nil {
		return nil, "", err
	}

	user := db.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing := db.User{}
		res := tx.Where("email = ?", email).First(&existing)
		if res.Error == nil {
			return errors.Wrap(apperr.ErrConflict, "email is already registered")
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*db.User, string, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if res.Error != nil {
		if res.Error == gorm.ErrRecordNotFound {
			return nil, "", errors.Wrap(apperr.ErrUnauthenticated, "email or password is incorrect")
		}
		return nil, "", res.Error
	}

	if err := s.bcryptCheck(user.Password, password); err != nil {
		return nil, "", errors.Wrap(apperr.ErrUnauthenticated, "email or password is incorrect")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *Service) GetCurrentUser(caller *db.User) (*db.User, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}
	return caller, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*db.User, error) {
	user := db.User{}
	res := s.db.WithContext(ctx).Where("id = ?", id).First(&user)
	if res.Error != nil {
		return nil, notFoundOr(res.Error, "user does not exist")
	}
	return &user, nil
}

func (s *Service) UpdateUser(ctx context.Context, caller *db.User, id string, input UpdateUserInput) (*db.User, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := db.User{}
		if res := tx.Where("id = ?", id).First(&user); res.Error != nil {
			return notFoundOr(res.Error, "user does not exist")
		}
		if err := auth.Authorize(caller, user.ID); err != nil {
			return errors.Wrap(err, "users can only update themselves")
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.IconImage != nil {
			updates["icon_image"] = *input.IconImage
		}
		if len(updates) != 0 {
			if res := tx.Model(&user).Updates(updates); res.Error != nil {
				return res.Error
			}
		}
		return tx.Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeleteUser(ctx context.Context, caller *db.User, id string) (*db.User, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.User{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Where("id = ?", id).First(&out); res.Error != nil {
			return notFoundOr(res.Error, "user does not exist")
		}
		if err := auth.Authorize(caller, out.ID); err != nil {
			return errors.Wrap(err, "users can only delete themselves")
		}
		return tx.Delete(&db.User{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
