package model

import (
	"time"

	"github.com/google/uuid"
)

// ServiceExtraInfo maps a set of service names to extra notes printed on the
// invoice (warranty terms, next-service reminders).
type ServiceExtraInfo struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceType  string      `gorm:"type:varchar(20);not null" json:"service_type"` // SERVICE, PARTS
	ServiceNames StringArray `gorm:"type:jsonb;not null" json:"service_names"`
	ExtraInfo    string      `gorm:"type:text;not null" json:"extra_info"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
