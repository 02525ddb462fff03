package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/giveshare/giveshare-back/internal/auth"
	"github.com/giveshare/giveshare-back/internal/config"
	"github.com/giveshare/giveshare-back/internal/db"
	"github.com/giveshare/giveshare-back/internal/storage"
)

var testDBCounter int

func newTestService(t *testing.T) *Service {
	t.Helper()

	// one shared-cache db per test so parallel connections see the same data
	testDBCounter++
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", testDBCounter)
	client, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(client))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		StorageUploadURL: "http://0.0.0.0:4443/upload/test-bucket",
		StoragePublicURL: "https://storage.googleapis.com/test-bucket",
	}
	return NewService(client, zap.NewNop().Sugar(), auth.NewTokenService(cfg), storage.NewUploader(cfg))
}

func createTestUser(t *testing.T, s *Service, name string) *db.User {
	t.Helper()
	user := db.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "irrelevant-hash",
	}
	require.NoError(t, s.db.Create(&user).Error)
	return &user
}

func createTestPost(t *testing.T, s *Service, owner *db.User, title string) *db.Post {
	t.Helper()
	post := db.Post{
		Title:         title,
		Content:       "content of " + title,
		Category:      db.PostCategoryGiveYou,
		CreatedUserID: owner.ID,
	}
	require.NoError(t, s.db.Create(&post).Error)
	return &post
}

func createTestTag(t *testing.T, s *Service, name string) *db.Tag {
	t.Helper()
	tag := db.Tag{Name: name}
	require.NoError(t, s.db.Create(&tag).Error)
	return &tag
}

func countRows(t *testing.T, s *Service, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, s.db.Model(model).Count(&count).Error)
	return count
}
