package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateSupply      = "CREATE_SUPPLY"
	ActionBulkCreateSupply  = "BULK_CREATE_SUPPLY"
	ActionUpdateSupply      = "UPDATE_SUPPLY"
	ActionDeleteSupply      = "DELETE_SUPPLY"
	ActionUpdateMapping     = "UPDATE_SUPPLY_MAPPING"
	ActionCreateCarService  = "CREATE_CAR_SERVICE"
	ActionUpdateCarService  = "UPDATE_CAR_SERVICE"
	ActionDeleteCarService  = "DELETE_CAR_SERVICE"
	ActionSettleInventory   = "SETTLE_INVENTORY"
	ActionCreateExpense     = "CREATE_EXPENSE"
	ActionUpdateExpense     = "UPDATE_EXPENSE"
	ActionDeleteExpense     = "DELETE_EXPENSE"
	ActionUpdateSettings    = "UPDATE_COMPANY_SETTINGS"
	ActionToggleUserStatus  = "TOGGLE_USER_STATUS"
	ActionDeleteUser        = "DELETE_USER"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated bot
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
