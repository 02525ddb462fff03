package service

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

func (s *Service) GetFavorites(ctx context.Context, createdUserID, postID *string) ([]db.Favorite, error) {
	query := map[string]interface{}{}
	if createdUserID != nil {
		query["created_user_id"] = *createdUserID
	}
	if postID != nil {
		query["post_id"] = *postID
	}

	favorites := make([]db.Favorite, 0)
	res := s.db.WithContext(ctx).
		Preload("CreatedUser").Preload("Post").
		Where(query).
		Order("created_at").
		Find(&favorites)
	if res.Error != nil {
		return nil, res.Error
	}
	return favorites, nil
}

// CreateFavorite notifies the post owner unless they favorited their own post.
func (s *Service) CreateFavorite(ctx context.Context, caller *db.User, postID string) (*db.Favorite, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Favorite{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := db.Post{}
		if res := tx.Where("id = ?", postID).First(&post); res.Error != nil {
			return notFoundOr(res.Error, "post does not exist")
		}

		existing := db.Favorite{}
		res := tx.Where("created_user_id = ? AND post_id = ?", caller.ID, postID).First(&existing)
		if res.Error == nil {
			return errors.Wrap(apperr.ErrConflict, "post is already favorited")
		}
		if res.Error != gorm.ErrRecordNotFound {
			return res.Error
		}

		favorite := db.Favorite{
			CreatedUserID: caller.ID,
			PostID:        postID,
		}
		if res := tx.Create(&favorite); res.Error != nil {
			return res.Error
		}

		if post.CreatedUserID != caller.ID {
			notification := db.Notification{
				TargetUserID: post.CreatedUserID,
				Message:      fmt.Sprintf("%s favorited your post", caller.Name),
				URL:          "/posts/" + postID,
			}
			if res := tx.Create(&notification); res.Error != nil {
				return res.Error
			}
		}

		return tx.Preload("CreatedUser").Preload("Post").Where("id = ?", favorite.ID).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeleteFavorite(ctx context.Context, caller *db.User, postID string) (*db.Favorite, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Favorite{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Preload("CreatedUser").Preload("Post").
			Where("created_user_id = ? AND post_id = ?", caller.ID, postID).
			First(&out)
		if res.Error != nil {
			return notFoundOr(res.Error, "favorite does not exist")
		}
		if err := auth.Authorize(caller, out.CreatedUserID); err != nil {
			return errors.Wrap(err, "users can only remove their own favorites")
		}
		return tx.Delete(&db.Favorite{}, "id = ?", out.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
