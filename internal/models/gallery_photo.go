package models

import "time"

// GalleryPhoto is a delivered photo from a shot session, stored in S3 with a
// webp thumbnail alongside.
type GalleryPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID    uint  `gorm:"index" json:"user_id"`
	SessionID *uint `json:"session_id"`

	ObjectKey   string `gorm:"size:255;not null" json:"-"`
	ThumbKey    string `gorm:"size:255" json:"-"`
	ContentType string `gorm:"size:50" json:"content_type"`
	Size        int64  `json:"size"`

	CreatedAt time.Time `json:"created_at"`
}
