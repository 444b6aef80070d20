package model

import "encoding/json"

// Quiz is an AI-generated question set for one user.
type Quiz struct {
	BaseModel
	UserID     uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Topic      string `gorm:"size:255;not null" json:"topic"`
	Difficulty string `gorm:"size:20;default:'medium'" json:"difficulty"`
	Questions  string `gorm:"type:json" json:"-"`
	Submitted  bool   `gorm:"default:false" json:"submitted"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is the JSON shape stored in Quiz.Questions.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      int      `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
}

// DecodeQuestions unpacks the stored question list.
func (q *Quiz) DecodeQuestions() ([]QuizQuestion, error) {
	var questions []QuizQuestion
	err := json.Unmarshal([]byte(q.Questions), &questions)
	return questions, err
}

// QuizResult records one submission of a quiz.
type QuizResult struct {
	BaseModel
	UserID   uint `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	QuizID   uint `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	Score    int  `gorm:"default:0" json:"score"`
	Total    int  `gorm:"default:0" json:"total"`
	Perfect  bool `gorm:"default:false" json:"perfect"`
	XPEarned int  `gorm:"default:0" json:"xpEarned"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
