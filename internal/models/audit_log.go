package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OperatorID uint   `gorm:"index:idx_audit_operator_created,priority:1" json:"operator_id"`
	Action     string `gorm:"size:50;not null;index" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	// em appointment_rolled_back: operação e erro remoto
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `gorm:"index:idx_audit_operator_created,priority:2" json:"created_at"`
}
