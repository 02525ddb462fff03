package service

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

type (
	PostFilter struct {
		CreatedUserID *string
		Category      *string
		GroupID       *string
		TagID         *string
	}

	CreatePostInput struct {
		Title     string
		Content   string
		Category  string
		IsPrivate bool
		BgImage   *string
		GroupID   *string
	}

	UpdatePostInput struct {
		Title     *string
		Content   *string
		Category  *string
		IsPrivate *bool
		BgImage   *string
	}
)

func validCategory(category string) bool {
	return category == db.PostCategoryGiveYou || category == db.PostCategoryGiveMe
}

func (s *Service) GetPost(ctx context.Context, id string) (*db.Post, error) {
	post := db.Post{}
	res := s.db.WithContext(ctx).Preload("CreatedUser").Where("id = ?", id).First(&post)
	if res.Error != nil {
		return nil, notFoundOr(res.Error, "post does not exist")
	}
	return &post, nil
}

// GetPosts builds a conjunctive filter from only the fields actually supplied;
// an empty filter returns every public post.
func (s *Service) GetPosts(ctx context.Context, f PostFilter) ([]db.Post, error) {
	w := squirrel.Eq{}
	builder := squirrel.Select("p.*").From("posts p")
	if f.TagID != nil {
		builder = builder.LeftJoin("tag_post_relations tpr ON p.id = tpr.post_id")
		w["tpr.tag_id"] = *f.TagID
	}
	if f.CreatedUserID != nil {
		w["p.created_user_id"] = *f.CreatedUserID
	}
	if f.Category != nil {
		w["p.category"] = *f.Category
	}
	if f.GroupID != nil {
		w["p.group_id"] = *f.GroupID
	}
	if len(w) != 0 {
		builder = builder.Where(w)
	}
	sql, args, err := builder.OrderBy("p.created_at DESC").ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	posts := make([]db.Post, 0)
	res := s.db.WithContext(ctx).Raw(sql, args...).Scan(&posts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return posts, nil
}

func (s *Service) CreatePost(ctx context.Context, caller *db.User, input CreatePostInput) (*db.Post, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}
	if !validCategory(input.Category) {
		return nil, errors.Errorf("unknown post category: %s", input.Category)
	}

	post := db.Post{
		Title:         input.Title,
		Content:       input.Content,
		Category:      input.Category,
		IsPrivate:     input.IsPrivate,
		BgImage:       input.BgImage,
		CreatedUserID: caller.ID,
		GroupID:       input.GroupID,
	}
	res := s.db.WithContext(ctx).Create(&post)
	if res.Error != nil {
		return nil, res.Error
	}
	return &post, nil
}

func (s *Service) UpdatePost(ctx context.Context, caller *db.User, id string, input UpdatePostInput) (*db.Post, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}
	if input.Category != nil && !validCategory(*input.Category) {
		return nil, errors.Errorf("unknown post category: %s", *input.Category)
	}

	out := db.Post{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := db.Post{}
		if res := tx.Where("id = ?", id).First(&post); res.Error != nil {
			return notFoundOr(res.Error, "post does not exist")
		}
		if err := auth.Authorize(caller, post.CreatedUserID); err != nil {
			return errors.Wrap(err, "only the creator can update the post")
		}

		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Content != nil {
			updates["content"] = *input.Content
		}
		if input.Category != nil {
			updates["category"] = *input.Category
		}
		if input.IsPrivate != nil {
			updates["is_private"] = *input.IsPrivate
		}
		if input.BgImage != nil {
			updates["bg_image"] = *input.BgImage
		}
		if len(updates) != 0 {
			if res := tx.Model(&post).Updates(updates); res.Error != nil {
				return res.Error
			}
		}
		return tx.Preload("CreatedUser").Where("id = ?", id).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) DeletePost(ctx context.Context, caller *db.User, id string) (*db.Post, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.Post{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res := tx.Preload("CreatedUser").Where("id = ?", id).First(&out); res.Error != nil {
			return notFoundOr(res.Error, "post does not exist")
		}
		if err := auth.Authorize(caller, out.CreatedUserID); err != nil {
			return errors.Wrap(err, "only the creator can delete the post")
		}
		return tx.Delete(&db.Post{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
