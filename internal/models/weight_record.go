package models

import "time"

// Histórico de peso, somente inserção.
type WeightRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PetID         uint      `gorm:"index;not null" json:"pet_id"`
	AppointmentID string    `gorm:"type:varchar(36);index" json:"appointment_id"`
	Weight        float64   `gorm:"not null" json:"weight"`
	RecordedBy    uint      `json:"recorded_by"`
	RecordedAt    time.Time `json:"recorded_at"`
}
