package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/apperr"
	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

type TagPostPair struct {
	TagID  string
	PostID string
}

// GetTagPostRelations filters conjunctively on the supplied keys; with neither
// supplied it returns every relation in insertion order.
func (s *Service) GetTagPostRelations(ctx context.Context, tagID, postID *string) ([]db.TagPostRelation, error) {
	query := map[string]interface{}{}
	if tagID != nil {
		query["tag_id"] = *tagID
	}
	if postID != nil {
		query["post_id"] = *postID
	}

	relations := make([]db.TagPostRelation, 0)
	res := s.db.WithContext(ctx).
		Preload("Tag").Preload("Post").
		Where(query).
		Order("created_at").
		Find(&relations)
	if res.Error != nil {
		return nil, res.Error
	}
	return relations, nil
}

func (s *Service) CreateTagPostRelation(ctx context.Context, caller *db.User, tagID, postID string) (*db.TagPostRelation, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := &db.TagPostRelation{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := createTagPostRelationTx(tx, caller, tagID, postID)
		if err != nil {
			return err
		}
		*out = *created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTagPostRelations attaches several tags at once; the batch is
// all-or-nothing.
func (s *Service) CreateTagPostRelations(ctx context.Context, caller *db.User, pairs []TagPostPair) ([]db.TagPostRelation, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := make([]db.TagPostRelation, 0, len(pairs))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, pair := range pairs {
			created, err := createTagPostRelationTx(tx, caller, pair.TagID, pair.PostID)
			if err != nil {
				return err
			}
			out = append(out, *created)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) DeleteTagPostRelation(ctx context.Context, caller *db.User, tagID, postID string) (*db.TagPostRelation, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	out := db.TagPostRelation{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Preload("Tag").Preload("Post").
			Where("tag_id = ? AND post_id = ?", tagID, postID).
			First(&out)
		if res.Error != nil {
			return notFoundOr(res.Error, "tagPostRelation does not exist")
		}
		if err := auth.Authorize(caller, out.Post.CreatedUserID); err != nil {
			return errors.Wrap(err, "only the creator can detach tags")
		}
		return tx.Delete(&db.TagPostRelation{}, "id = ?", out.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func createTagPostRelationTx(tx *gorm.DB, caller *db.User, tagID, postID string) (*db.TagPostRelation, error) {
	tag := db.Tag{}
	if res := tx.Where("id = ?", tagID).First(&tag); res.Error != nil && res.Error != gorm.ErrRecordNotFound {
		return nil, res.Error
	} else if res.Error == gorm.ErrRecordNotFound {
		return nil, errors.Wrap(apperr.ErrNotFound, "tag or post does not exist")
	}

	post := db.Post{}
	if res := tx.Where("id = ?", postID).First(&post); res.Error != nil && res.Error != gorm.ErrRecordNotFound {
		return nil, res.Error
	} else if res.Error == gorm.ErrRecordNotFound {
		return nil, errors.Wrap(apperr.ErrNotFound, "tag or post does not exist")
	}

	if err := auth.Authorize(caller, post.CreatedUserID); err != nil {
		return nil, errors.Wrap(err, "only the creator can attach tags")
	}

	existing := db.TagPostRelation{}
	res := tx.Where("tag_id = ? AND post_id = ?", tagID, postID).First(&existing)
	if res.Error == nil {
		return nil, errors.Wrap(apperr.ErrConflict, "tag is already attached to the post")
	}
	if res.Error != gorm.ErrRecordNotFound {
		return nil, res.Error
	}

	relation := db.TagPostRelation{
		TagID:  tagID,
		PostID: postID,
	}
	if res := tx.Create(&relation); res.Error != nil {
		return nil, res.Error
	}

	out := db.TagPostRelation{}
	if res := tx.Preload("Tag").Preload("Post").Where("id = ?", relation.ID).First(&out); res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}
