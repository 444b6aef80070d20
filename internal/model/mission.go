package model

// UserMission is the per-user, per-day progress overlay for a catalog
// mission. Keyed by (user, mission, date) so each day gets a fresh row.
type UserMission struct {
	BaseModel
	UserID      uint   `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_user_mission_date" json:"userId"`
	MissionID   string `gorm:"size:50;not null;uniqueIndex:idx_user_mission_date" json:"missionId"`
	MissionDate string `gorm:"size:10;not null;uniqueIndex:idx_user_mission_date" json:"missionDate"`
	Progress    int    `gorm:"default:0" json:"progress"`
	Completed   bool   `gorm:"default:false" json:"completed"`
}

func (UserMission) TableName() string {
	return "user_missions"
}
