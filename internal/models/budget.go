package models

import "time"

// Budget is the singleton monthly spending limit. UpdatedAt re-arms the
// 90-day mutation lock on every successful change.
type Budget struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MonthlyLimit int64     `gorm:"not null" json:"monthly_limit"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Budget) TableName() string {
	return "budgets"
}
