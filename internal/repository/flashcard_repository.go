package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type FlashcardRepository struct {
	DB *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) *FlashcardRepository {
	return &FlashcardRepository{DB: db}
}

func (r *FlashcardRepository) CreateDeck(deck *model.Deck) error {
	return r.DB.Create(deck).Error
}

func (r *FlashcardRepository) FindDeckByIDAndUserID(deckID, userID uint) (*model.Deck, error) {
	var deck model.Deck
	err := r.DB.Where("id = ? AND user_id = ?", deckID, userID).First(&deck).Error
	if err != nil {
		return nil, err
	}
	return &deck, nil
}

func (r *FlashcardRepository) FindDecksByUserID(userID uint) ([]model.Deck, error) {
	var decks []model.Deck
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&decks).Error
	return decks, err
}

func (r *FlashcardRepository) DeleteDeck(deck *model.Deck) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deck_id = ?", deck.ID).Delete(&model.Flashcard{}).Error; err != nil {
			return err
		}
		return tx.Delete(deck).Error
	})
}

func (r *FlashcardRepository) CreateCard(card *model.Flashcard) error {
	return r.DB.Create(card).Error
}

func (r *FlashcardRepository) CreateCards(cards []model.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}
	return r.DB.Create(&cards).Error
}

func (r *FlashcardRepository) FindCardByID(cardID uint) (*model.Flashcard, error) {
	var card model.Flashcard
	err := r.DB.First(&card, cardID).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *FlashcardRepository) FindCardsByDeckID(deckID uint) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.DB.Where("deck_id = ?", deckID).Order("id ASC").Find(&cards).Error
	return cards, err
}

func (r *FlashcardRepository) UpdateCard(card *model.Flashcard) error {
	return r.DB.Save(card).Error
}

func (r *FlashcardRepository) CountCardsByDeckID(deckID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Flashcard{}).Where("deck_id = ?", deckID).Count(&count).Error
	return count, err
}
