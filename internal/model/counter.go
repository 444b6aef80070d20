package model

// ActivityCounter is a lifetime per-user counter. Values only ever grow.
type ActivityCounter struct {
	BaseModel
	UserID uint   `gorm:"index;type:bigint unsigned;not null;uniqueIndex:idx_user_counter" json:"userId"`
	Name   string `gorm:"size:50;not null;uniqueIndex:idx_user_counter" json:"name"`
	Value  int    `gorm:"default:0" json:"value"`
}

func (ActivityCounter) TableName() string {
	return "activity_counters"
}
