package model

import "encoding/json"

// StudyPlan is an AI-generated day-by-day schedule toward a goal.
type StudyPlan struct {
	BaseModel
	UserID      uint    `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Goal        string  `gorm:"size:255;not null" json:"goal"`
	ExamDate    string  `gorm:"size:10" json:"examDate"`
	HoursPerDay float64 `gorm:"default:2" json:"hoursPerDay"`
	Plan        string  `gorm:"type:json" json:"-"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}

// PlanDay is the JSON shape stored in StudyPlan.Plan.
type PlanDay struct {
	Day   int      `json:"day"`
	Date  string   `json:"date,omitempty"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// DecodeDays unpacks the stored schedule.
func (p *StudyPlan) DecodeDays() ([]PlanDay, error) {
	var days []PlanDay
	err := json.Unmarshal([]byte(p.Plan), &days)
	return days, err
}
