package models

import "time"

// BusinessDayRule é o expediente de um dia da semana (0 = domingo).
type BusinessDayRule struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	OperatorID uint `gorm:"uniqueIndex:idx_operator_day;not null" json:"operator_id"`

	DayOfWeek int    `gorm:"uniqueIndex:idx_operator_day" json:"day_of_week"`
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `gorm:"size:8" json:"open_time"`
	CloseTime string `gorm:"size:8" json:"close_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
