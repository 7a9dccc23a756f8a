package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	PetID uint `gorm:"index" json:"pet_id"`
	Pet   Pet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// UserID é a conta que registrou o agendamento (cliente ou equipe).
	UserID *uint `json:"user_id"`

	Date    string `gorm:"size:10;index:idx_appointments_slot" json:"date"`
	Time    string `gorm:"size:5;index:idx_appointments_slot" json:"time"`
	Service string `gorm:"size:255" json:"service"`
	Status  string `gorm:"size:20;default:'pendiente';index" json:"status"`

	Observations  string   `gorm:"type:text" json:"observations"`
	FinalWeight   *float64 `json:"final_weight"`
	ServicePrice  *float64 `json:"service_price"`
	PaymentMethod string   `gorm:"size:30" json:"payment_method"`
	ShampooType   string   `gorm:"size:60" json:"shampoo_type"`
	InvoiceRef    string   `gorm:"size:60" json:"invoice_ref"`
	InvoiceURL    string   `gorm:"size:512" json:"invoice_url"`

	ClientName string `gorm:"size:100" json:"client_name"`
	PetName    string `gorm:"size:100" json:"pet_name"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
