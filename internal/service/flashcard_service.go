package service

import (
	"encoding/json"
	"fmt"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"
	"time"
)

type FlashcardService struct {
	FlashcardRepo *repository.FlashcardRepository
	AI            *AIService
	Progress      *ProgressService
}

func NewFlashcardService(flashcardRepo *repository.FlashcardRepository, ai *AIService, progress *ProgressService) *FlashcardService {
	return &FlashcardService{
		FlashcardRepo: flashcardRepo,
		AI:            ai,
		Progress:      progress,
	}
}

type CreateDeckRequest struct {
	Title   string `json:"title" binding:"required"`
	Subject string `json:"subject"`
}

func (s *FlashcardService) CreateDeck(userID uint, req CreateDeckRequest) (*model.Deck, error) {
	deck := &model.Deck{
		UserID:  userID,
		Title:   req.Title,
		Subject: req.Subject,
	}
	if err := s.FlashcardRepo.CreateDeck(deck); err != nil {
		return nil, err
	}
	return deck, nil
}

// DeckView pairs a deck with its card count for list rendering.
type DeckView struct {
	model.Deck
	CardCount int64 `json:"cardCount"`
}

func (s *FlashcardService) ListDecks(userID uint) ([]DeckView, error) {
	decks, err := s.FlashcardRepo.FindDecksByUserID(userID)
	if err != nil {
		return nil, err
	}

	views := make([]DeckView, 0, len(decks))
	for _, deck := range decks {
		count, err := s.FlashcardRepo.CountCardsByDeckID(deck.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, DeckView{Deck: deck, CardCount: count})
	}
	return views, nil
}

func (s *FlashcardService) GetDeck(userID, deckID uint) (*model.Deck, []model.Flashcard, error) {
	deck, err := s.FlashcardRepo.FindDeckByIDAndUserID(deckID, userID)
	if err != nil {
		return nil, nil, util.ErrDeckNotFound
	}
	cards, err := s.FlashcardRepo.FindCardsByDeckID(deck.ID)
	if err != nil {
		return nil, nil, err
	}
	return deck, cards, nil
}

func (s *FlashcardService) DeleteDeck(userID, deckID uint) error {
	deck, err := s.FlashcardRepo.FindDeckByIDAndUserID(deckID, userID)
	if err != nil {
		return util.ErrDeckNotFound
	}
	return s.FlashcardRepo.DeleteDeck(deck)
}

type CreateCardRequest struct {
	Front string `json:"front" binding:"required"`
	Back  string `json:"back" binding:"required"`
}

func (s *FlashcardService) CreateCard(userID, deckID uint, req CreateCardRequest) (*model.Flashcard, error) {
	deck, err := s.FlashcardRepo.FindDeckByIDAndUserID(deckID, userID)
	if err != nil {
		return nil, util.ErrDeckNotFound
	}

	card := &model.Flashcard{
		DeckID: deck.ID,
		Front:  req.Front,
		Back:   req.Back,
	}
	if err := s.FlashcardRepo.CreateCard(card); err != nil {
		return nil, err
	}
	return card, nil
}

type GenerateCardsRequest struct {
	Topic string `json:"topic" binding:"required"`
	Count int    `json:"count"`
}

const flashcardSystemPrompt = "You create study flashcards. Reply with a JSON " +
	"array only, no prose. Each element must have the keys \"front\" (the " +
	"prompt side) and \"back\" (the answer side), both strings."

type generatedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateCards asks the model for cards on a topic and appends them to the deck.
func (s *FlashcardService) GenerateCards(userID, deckID uint, req GenerateCardsRequest) ([]model.Flashcard, error) {
	deck, err := s.FlashcardRepo.FindDeckByIDAndUserID(deckID, userID)
	if err != nil {
		return nil, util.ErrDeckNotFound
	}

	if req.Count < 1 || req.Count > 30 {
		req.Count = 10
	}

	prompt := fmt.Sprintf("Generate %d flashcards about %q.", req.Count, req.Topic)
	answer, err := s.AI.Chat(prompt, flashcardSystemPrompt, nil)
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(answer)
	if payload == "" {
		return nil, fmt.Errorf("AI reply contains no JSON array")
	}

	var generated []generatedCard
	if err := json.Unmarshal([]byte(payload), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse generated cards: %w", err)
	}

	cards := make([]model.Flashcard, 0, len(generated))
	for _, g := range generated {
		if g.Front == "" || g.Back == "" {
			continue
		}
		cards = append(cards, model.Flashcard{
			DeckID: deck.ID,
			Front:  g.Front,
			Back:   g.Back,
		})
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("AI returned no usable cards")
	}

	if err := s.FlashcardRepo.CreateCards(cards); err != nil {
		return nil, err
	}
	return cards, nil
}

type ReviewCardResponse struct {
	Card     *model.Flashcard `json:"card"`
	Progress *ActivityOutcome `json:"progress"`
}

// ReviewCard records one review of the card and feeds the progress ledger.
func (s *FlashcardService) ReviewCard(userID, deckID, cardID uint) (*ReviewCardResponse, error) {
	deck, err := s.FlashcardRepo.FindDeckByIDAndUserID(deckID, userID)
	if err != nil {
		return nil, util.ErrDeckNotFound
	}

	card, err := s.FlashcardRepo.FindCardByID(cardID)
	if err != nil || card.DeckID != deck.ID {
		return nil, util.ErrCardNotFound
	}

	now := time.Now()
	card.ReviewCount++
	card.LastReviewedAt = &now
	if err := s.FlashcardRepo.UpdateCard(card); err != nil {
		return nil, err
	}

	outcome, err := s.Progress.RecordFlashcardReview(userID, 1)
	if err != nil {
		return nil, err
	}

	return &ReviewCardResponse{Card: card, Progress: outcome}, nil
}
