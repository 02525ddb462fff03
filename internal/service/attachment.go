package service

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/db"
)

// CreateAttachment uploads the binary content to object storage and records
// the resulting public URL.
func (s *Service) CreateAttachment(ctx context.Context, caller *db.User, filename, contentType string, content []byte) (*db.Attachment, error) {
	if err := auth.Require(caller); err != nil {
		return nil, err
	}

	key := uuid.NewString() + path.Ext(filename)
	url, err := s.uploader.Upload(ctx, key, contentType, content)
	if err != nil {
		return nil, err
	}

	attachment := db.Attachment{
		UserID:    caller.ID,
		ObjectKey: key,
		URL:       url,
	}
	res := s.db.WithContext(ctx).Create(&attachment)
	if res.Error != nil {
		return nil, res.Error
	}
	return &attachment, nil
}
