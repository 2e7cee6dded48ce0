package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Alert represents a user's standing price alert. The logical identity is
// (user_id, symbol, target); condition is not part of the removal key, so
// two alerts differing only by condition at the same target are removed
// together. The ID column only addresses rows, it carries no meaning.
type Alert struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    string          `gorm:"index;not null" json:"user_id"`
	Symbol    string          `gorm:"index;not null" json:"symbol"`
	Condition string          `gorm:"not null" json:"condition"` // above, below
	Target    decimal.Decimal `gorm:"type:decimal(15,4)" json:"target"`
	CreatedAt time.Time       `json:"created_at"`
}

// Alert condition constants
const (
	ConditionAbove = "above"
	ConditionBelow = "below"
)

// ValidConditions returns the valid alert conditions
func ValidConditions() []string {
	return []string{ConditionAbove, ConditionBelow}
}

// IsValidCondition checks if the condition keyword is valid
func IsValidCondition(condition string) bool {
	for _, valid := range ValidConditions() {
		if condition == valid {
			return true
		}
	}
	return false
}

// Triggered reports whether the alert fires at the given closing price.
// Comparison is strictly above/below: equality never triggers.
func (a *Alert) Triggered(close decimal.Decimal) bool {
	switch a.Condition {
	case ConditionAbove:
		return close.GreaterThan(a.Target)
	case ConditionBelow:
		return close.LessThan(a.Target)
	}
	return false
}

// MigrateAlertModels runs database migrations for alert models
func MigrateAlertModels(db *gorm.DB) error {
	return db.AutoMigrate(&Alert{})
}
