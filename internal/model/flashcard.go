package model

import "time"

// Deck groups a user's flashcards by subject.
type Deck struct {
	BaseModel
	UserID  uint   `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Subject string `gorm:"size:100" json:"subject"`
}

func (Deck) TableName() string {
	return "decks"
}

type Flashcard struct {
	BaseModel
	DeckID         uint       `gorm:"index;type:bigint unsigned;not null" json:"deckId"`
	Front          string     `gorm:"type:text;not null" json:"front"`
	Back           string     `gorm:"type:text;not null" json:"back"`
	ReviewCount    int        `gorm:"default:0" json:"reviewCount"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

func (Flashcard) TableName() string {
	return "flashcards"
}
