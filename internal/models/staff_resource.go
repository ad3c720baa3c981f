package models

import "time"

// StaffResource é uma coluna agendável do calendário.
type StaffResource struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OperatorID  uint   `gorm:"index;not null" json:"operator_id"`
	DisplayName string `gorm:"size:100;not null" json:"display_name"`
	ColorTag    string `gorm:"size:20" json:"color_tag"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
