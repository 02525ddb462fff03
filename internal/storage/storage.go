package storage

import (
	"context"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/giveshare/giveshare-back/internal/config"
)

// Uploader pushes attachment bodies to the object store through pre-signed
// PUT URLs and hands back the public URL the client embeds in posts.
type Uploader struct {
	client        *resty.Client
	uploadBaseURL string
	publicBaseURL string
}

func NewUploader(cfg *config.Config) *Uploader {
	return &Uploader{
		client:        resty.New(),
		uploadBaseURL: strings.TrimRight(cfg.StorageUploadURL, "/"),
		publicBaseURL: strings.TrimRight(cfg.StoragePublicURL, "/"),
	}
}

func (u *Uploader) Upload(ctx context.Context, key, contentType string, content []byte) (string, error) {
	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(content).
		Put(u.uploadBaseURL + "/" + key)
	if err != nil {
		return "", errors.Wrap(err, "put object")
	}
	if resp.IsError() {
		return "", errors.Errorf("put object: unexpected status %d", resp.StatusCode())
	}
	return u.publicBaseURL + "/" + key, nil
}
