package model

import "time"

// UserBadge is the per-user unlock overlay for a catalog badge. A row exists
// only once a badge is unlocked; the unique index prevents duplicates.
type UserBadge struct {
	BaseModel
	UserID     uint      `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_user_badge" json:"userId"`
	BadgeID    string    `gorm:"size:50;not null;uniqueIndex:idx_user_badge" json:"badgeId"`
	UnlockedAt time.Time `gorm:"not null" json:"unlockedAt"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
