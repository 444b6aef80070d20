package model

// DoubtSession is one conversation thread with the AI tutor.
type DoubtSession struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Subject string `gorm:"size:100" json:"subject"`
	Title   string `gorm:"size:255" json:"title"`
}

func (DoubtSession) TableName() string {
	return "doubt_sessions"
}

// DoubtMessage is a single turn in a doubt session. Role is "user" or
// "assistant". ImageURL is set when the question came in as a photo.
type DoubtMessage struct {
	BaseModel
	SessionID uint   `gorm:"index;type:bigint unsigned;not null" json:"sessionId"`
	Role      string `gorm:"size:20;not null" json:"role"`
	Content   string `gorm:"type:text" json:"content"`
	ImageURL  string `gorm:"size:255" json:"imageUrl,omitempty"`
}

func (DoubtMessage) TableName() string {
	return "doubt_messages"
}

// SolutionStep is one step of a user's attempted solution, graded by the AI.
type SolutionStep struct {
	BaseModel
	SessionID uint   `gorm:"index;type:bigint unsigned;not null" json:"sessionId"`
	UserID    uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Correct   bool   `gorm:"default:false" json:"correct"`
	Feedback  string `gorm:"type:text" json:"feedback"`
}

func (SolutionStep) TableName() string {
	return "solution_steps"
}
