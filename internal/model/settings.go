package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanySettings holds the shop profile printed on invoices. A single row is
// kept in the database and injected into the services that render documents;
// it is never exposed as package-level state.
type CompanySettings struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CompanyName string    `gorm:"type:varchar(255);not null" json:"company_name"`
	Address     string    `gorm:"type:text" json:"address"`
	Phone       string    `gorm:"type:varchar(50)" json:"phone"`
	GstNumber   string    `gorm:"type:varchar(50)" json:"gst_number"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
