package models

import "time"

// Achievement is the persisted unlock state for one catalog entry.
// IsUnlocked is monotonic: once true it never reverts, and UnlockedAt is
// stamped exactly once at first unlock.
type Achievement struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string     `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string     `gorm:"type:varchar(100);not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Tier        int        `gorm:"not null;index" json:"tier"`
	Icon        string     `gorm:"type:varchar(10)" json:"icon"`
	IsUnlocked  bool       `gorm:"not null;default:false" json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Achievement) TableName() string {
	return "achievements"
}
