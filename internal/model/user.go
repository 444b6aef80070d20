package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)

// User holds identity plus the gamification profile scalars. XP, Level,
// Streak and the bookkeeping dates are mutated only through the progress
// service, which routes every change through the ledger rules.
// swagger:model User
type User struct {
	BaseModel
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:100;unique;not null" json:"email"`
	Password         string    `gorm:"size:100;not null" json:"-"`
	Role             UserRole  `gorm:"type:enum('student','admin');default:'student'" json:"role"`
	Avatar           string    `gorm:"size:255" json:"avatar"`
	XP               int       `gorm:"default:0" json:"xp"`
	Level            int       `gorm:"default:1" json:"level"`
	Streak           int       `gorm:"default:0" json:"streak"`
	LastActiveDate   string    `gorm:"size:10" json:"lastActiveDate"`
	LastMissionReset string    `gorm:"size:10" json:"-"`
	Disabled         bool      `gorm:"default:false" json:"disabled"`
	LastLogin        time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen         time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
