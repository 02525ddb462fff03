package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PostCategoryGiveYou = "GiveYou"
	PostCategoryGiveMe  = "GiveMe"
)

type (
	// BaseModel replaces the numeric gorm.Model: every entity is keyed by a
	// string uuid because the API addresses rows by opaque string ids and
	// composite string-key pairs.
	BaseModel struct {
		ID        string `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	User struct {
		BaseModel
		Name        string `gorm:"not null"`
		Email       string `gorm:"unique;not null"`
		Password    string `gorm:"not null"`
		Description string
		IconImage   *string
		Posts       []Post `gorm:"foreignKey:CreatedUserID"`
	}

	Post struct {
		BaseModel
		Title         string `gorm:"not null"`
		Content       string `gorm:"not null"`
		Category      string `gorm:"not null"`
		IsPrivate     bool   `gorm:"not null;default:false"`
		BgImage       *string
		CreatedUserID string `gorm:"not null;index"`
		CreatedUser   User   `gorm:"foreignKey:CreatedUserID"`
		GroupID       *string
	}

	Tag struct {
		BaseModel
		Name string `gorm:"not null;index"`
	}

	// TagPostRelation has no owner column of its own: mutation authority is
	// inherited from the referenced Post.
	TagPostRelation struct {
		BaseModel
		TagID  string `gorm:"not null;uniqueIndex:uidx_tag_post"`
		PostID string `gorm:"not null;uniqueIndex:uidx_tag_post"`
		Tag    Tag
		Post   Post
	}

	ReadManagement struct {
		BaseModel
		TargetUserID string `gorm:"not null;uniqueIndex:uidx_target_user_message"`
		MessageID    string `gorm:"not null;uniqueIndex:uidx_target_user_message"`
		IsRead       bool   `gorm:"not null;default:false"`
	}

	Group struct {
		BaseModel
		Name        string `gorm:"not null"`
		Description string
		Image       *string
		AdminUserID string `gorm:"not null;index"`
		AdminUser   User   `gorm:"foreignKey:AdminUserID"`
		ProductID   string `gorm:"unique;not null"`
	}

	UserGroupRelation struct {
		BaseModel
		UserID  string `gorm:"not null;uniqueIndex:uidx_user_group"`
		GroupID string `gorm:"not null;uniqueIndex:uidx_user_group"`
		User    User
		Group   Group
	}

	Room struct {
		BaseModel
		GroupID *string `gorm:"uniqueIndex"`
		Group   *Group
		Members []RoomMember
	}

	RoomMember struct {
		BaseModel
		RoomID string `gorm:"not null;uniqueIndex:uidx_room_user"`
		UserID string `gorm:"not null;uniqueIndex:uidx_room_user"`
		Room   Room
		User   User
	}

	Message struct {
		BaseModel
		RoomID string `gorm:"not null;index"`
		UserID string `gorm:"not null"`
		Body   string `gorm:"not null"`
		Room   Room
		User   User
	}

	Notification struct {
		BaseModel
		TargetUserID string `gorm:"not null;index"`
		Message      string `gorm:"not null"`
		URL          string
		IsChecked    bool `gorm:"not null;default:false"`
	}

	Favorite struct {
		BaseModel
		CreatedUserID string `gorm:"not null;uniqueIndex:uidx_favorite_user_post"`
		PostID        string `gorm:"not null;uniqueIndex:uidx_favorite_user_post"`
		CreatedUser   User   `gorm:"foreignKey:CreatedUserID"`
		Post          Post
	}

	Attachment struct {
		BaseModel
		UserID    string `gorm:"not null;index"`
		ObjectKey string `gorm:"not null"`
		URL       string `gorm:"not null"`
	}
)

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
