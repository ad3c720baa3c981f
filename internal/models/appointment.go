package models

import "time"

type Appointment struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OperatorID uint `gorm:"index;not null" json:"operator_id"`

	Title string `gorm:"size:150" json:"title"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// Referência fraca: o staff pode ter sido removido.
	StaffResourceID uint `gorm:"index" json:"staff_resource_id"`

	ClientName  string  `gorm:"size:100" json:"client_name"`
	ServiceName string  `gorm:"size:100" json:"service_name"`
	Price       float64 `json:"price"`

	Status        string  `gorm:"size:20;default:'pending'" json:"status"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"payment_status"`
	TotalPaid     float64 `json:"total_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Duration of the booked interval.
func (a Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// Same reports whether both values carry identical scheduling data.
func (a Appointment) Same(b Appointment) bool {
	return a.ID == b.ID &&
		a.OperatorID == b.OperatorID &&
		a.Title == b.Title &&
		a.StartTime.Equal(b.StartTime) &&
		a.EndTime.Equal(b.EndTime) &&
		a.StaffResourceID == b.StaffResourceID &&
		a.ClientName == b.ClientName &&
		a.ServiceName == b.ServiceName &&
		a.Price == b.Price &&
		a.Status == b.Status &&
		a.PaymentStatus == b.PaymentStatus &&
		a.TotalPaid == b.TotalPaid
}
