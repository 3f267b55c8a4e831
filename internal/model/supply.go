package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType enum constants
const (
	PaymentTypeCash   = "CASH"
	PaymentTypeCard   = "CARD"
	PaymentTypeCredit = "CREDIT"
)

// StringArray is a custom type for JSONB string arrays
type StringArray []string

// Scan implements the sql.Scanner interface for StringArray
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		*s = []string{}
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// Value implements the driver.Valuer interface for StringArray
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// GormDataType defines the data type for GORM
func (StringArray) GormDataType() string {
	return "jsonb"
}

// Supply represents a purchased stock item received from a supplier.
// Name is the canonical identifier for stock purposes; MappedNames holds the
// alternate free-text names under which the same part is consumed in car
// service records. Month and Year are always derived from SuppliedDate and
// must never be set independently of it.
type Supply struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNumber string          `gorm:"type:varchar(100);not null;index" json:"invoice_number"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index" json:"supplier_id"`
	Supplier      *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Quantity      int             `gorm:"type:int;not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	GstAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"gst_amount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	SuppliedDate  time.Time       `gorm:"not null;index" json:"supplied_date"`
	Month         int             `gorm:"type:int;not null;index" json:"month"` // 1-12, derived from SuppliedDate
	Year          int             `gorm:"type:int;not null;index" json:"year"`  // derived from SuppliedDate
	PaymentType   string          `gorm:"type:varchar(20)" json:"payment_type"` // CASH, CARD, CREDIT
	Remarks       string          `gorm:"type:text" json:"remarks"`
	MappedNames   StringArray     `gorm:"type:jsonb" json:"mapped_names"`
	Settled       bool            `gorm:"default:false;index" json:"settled"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
