package models

import "time"

type Pet struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	ClientID uint `gorm:"index;not null" json:"client_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Species string `gorm:"size:30" json:"species"`
	Breed   string `gorm:"size:60" json:"breed"`

	LastGroomingDate      *string `gorm:"size:10" json:"last_grooming_date"`
	ReminderFrequencyDays *int    `json:"reminder_frequency_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
