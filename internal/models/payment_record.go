package models

import "time"

// Registrado por fora do núcleo de agenda; aqui só é lido.
type PaymentRecord struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AppointmentID uint      `gorm:"index;not null" json:"appointment_id"`
	Amount        float64   `json:"amount"`
	Method        string    `gorm:"size:30" json:"method"`
	Date          time.Time `json:"date"`

	CreatedAt time.Time `json:"created_at"`
}
