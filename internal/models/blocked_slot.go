package models

import "time"

type BlockedSlot struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Date   string `gorm:"size:10;not null;uniqueIndex:idx_blocked_slot" json:"date"`
	Time   string `gorm:"size:5;not null;uniqueIndex:idx_blocked_slot" json:"time"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
