package models

import "time"

type AppointmentPhoto struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	AppointmentID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_photo_kind" json:"appointment_id"`
	Type          string `gorm:"size:20;not null;uniqueIndex:idx_photo_kind" json:"type"`
	URL           string `gorm:"size:512;not null" json:"url"`
	ObjectKey     string `gorm:"size:255" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
