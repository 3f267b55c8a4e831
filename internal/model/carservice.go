package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceType enum constants. Only PARTS items consume stock; SERVICE items
// are billable labor and never touch inventory.
const (
	ServiceTypeService = "SERVICE"
	ServiceTypeParts   = "PARTS"
)

// DiscountType enum constants
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

// CarService represents one vehicle service visit with its billable line
// items. TotalAmount, FinalAmount and GstAmount are derived from the items
// and discount fields; Month and Year are derived from CarInDateTime. All
// derived fields are recomputed on every create/update.
type CarService struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CarPlate       string           `gorm:"type:varchar(50);not null;index" json:"car_plate"`
	OwnerName      string           `gorm:"type:varchar(255);not null" json:"owner_name"`
	PhoneNo        string           `gorm:"type:varchar(50)" json:"phone_no"`
	CarInDateTime  time.Time        `gorm:"not null;index" json:"car_in_date_time"`
	CarOutDateTime *time.Time       `json:"car_out_date_time"` // nil while the service is still open
	TotalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	DiscountType   *string          `gorm:"type:varchar(20)" json:"discount_type"` // PERCENTAGE, FIXED
	DiscountAmount *decimal.Decimal `gorm:"type:decimal(18,4)" json:"discount_amount"`
	FinalAmount    decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"final_amount"`
	GstAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"gst_amount"`
	PaidInCash     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"paid_in_cash"`
	PaidInCard     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0" json:"paid_in_card"`
	Month          int              `gorm:"type:int;not null;index" json:"month"` // 1-12, derived from CarInDateTime
	Year           int              `gorm:"type:int;not null;index" json:"year"`  // derived from CarInDateTime
	Items          []CarServiceItem `gorm:"foreignKey:CarServiceID;constraint:OnDelete:CASCADE" json:"car_service_items"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// CarServiceItem is a billable line owned by a CarService. Items are replaced
// wholesale on update and must never outlive their parent.
type CarServiceItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CarServiceID uuid.UUID       `gorm:"type:uuid;not null;index" json:"car_service_id"`
	ServiceType  string          `gorm:"type:varchar(20);not null" json:"service_type"` // SERVICE, PARTS
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Quantity     int             `gorm:"type:int;not null" json:"quantity"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"` // price * quantity
	Settled      bool            `gorm:"default:false;index" json:"settled"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
