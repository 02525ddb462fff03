package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/giveshare/giveshare-back/internal/config"
)

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	client, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(client); err != nil {
		return nil, err
	}

	return client, nil
}

// Migrate is shared with the sqlite-backed service tests.
func Migrate(client *gorm.DB) error {
	targets := []interface{}{
		&User{},
		&Post{},
		&Tag{},
		&TagPostRelation{},
		&ReadManagement{},
		&Group{},
		&UserGroupRelation{},
		&Room{},
		&RoomMember{},
		&Message{},
		&Notification{},
		&Favorite{},
		&Attachment{},
	}
	for _, target := range targets {
		if err := client.AutoMigrate(target); err != nil {
			return errors.Wrapf(err, "migrate %T", target)
		}
	}
	return nil
}
