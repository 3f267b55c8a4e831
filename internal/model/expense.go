package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense represents a general shop cost entry outside of supplies
// (rent, utilities, wages). Month and Year are derived from IssuedDate.
type Expense struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	IssuedDate time.Time       `gorm:"not null;index" json:"issued_date"`
	Month      int             `gorm:"type:int;not null;index" json:"month"` // 1-12, derived from IssuedDate
	Year       int             `gorm:"type:int;not null;index" json:"year"`  // derived from IssuedDate
	Remarks    string          `gorm:"type:text" json:"remarks"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
