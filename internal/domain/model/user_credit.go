package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserCredit is a row of the user_credits table.
type UserCredit struct {
	ID               int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Email            string          `gorm:"uniqueIndex;not null;size:320" json:"email"`
	CreditsRemaining decimal.Decimal `gorm:"column:credits_remaining_mb;type:decimal(15,2);not null;default:0;check:chk_user_credits_non_negative,credits_remaining_mb >= 0" json:"credits_remaining_mb"`
	LastUsed         *time.Time      `json:"last_used,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserCredit) TableName() string {
	return "user_credits"
}
