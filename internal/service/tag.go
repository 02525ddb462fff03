package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetAllTags(ctx context.Context, searchText string) ([]db.Tag, error) {
	tags := make([]db.Tag, 0)
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if searchText != "" {
		query = query.Where("name LIKE ?", "%"+searchText+"%")
	}
	if res := query.Find(&tags); res.Error != nil {
		return nil, res.Error
	}
	return tags, nil
}

// CreateTag returns the existing row when the name is already taken, which is
// how the tagging flow creates missing tags on the fly.
func (s *Service) CreateTag(ctx context.Context, caller *db.User, name string) (*db.Tag, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	tag := db.Tag{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("name = ?", name).First(&tag)
		if res.Error == nil {
			return nil
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}
		tag = db.Tag{Name: name}
		return tx.Create(&tag).Error
	})
	if err != nil {
		return nil, err
	}
	return &tag, nil
}
