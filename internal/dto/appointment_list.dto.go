package dto

import "time"

// StaffPlaceholder é exibido quando o profissional não existe mais.
const StaffPlaceholder = "Profissional removido"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	StaffResourceID uint      `json:"staff_resource_id"`
	StaffName       string    `json:"staff_name"`
	StaffColor      string    `json:"staff_color"`
	StaffMissing    bool      `json:"staff_missing"`
	ClientName      string    `json:"client_name"`
	ServiceName     string    `json:"service_name"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	TotalPaid       float64   `json:"total_paid"`
}
