package controller

import (
	"errors"
	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FlashcardController struct {
	FlashcardService *service.FlashcardService
}

func NewFlashcardController(flashcardService *service.FlashcardService) *FlashcardController {
	return &FlashcardController{FlashcardService: flashcardService}
}

// CreateDeck godoc
// @Summary Create a deck
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CreateDeckRequest true "deck details"
// @Success 201 {object} util.Response{data=model.Deck}
// @Router /api/decks [post]
func (c *FlashcardController) CreateDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateDeckRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	deck, err := c.FlashcardService.CreateDeck(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, deck)
}

// ListDecks godoc
// @Summary List decks with card counts
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.DeckView}
// @Router /api/decks [get]
func (c *FlashcardController) ListDecks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	decks, err := c.FlashcardService.ListDecks(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, decks)
}

// GetDeck godoc
// @Summary Fetch a deck and its cards
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path int true "deck id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/decks/{id} [get]
func (c *FlashcardController) GetDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deckID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	deck, cards, err := c.FlashcardService.GetDeck(claims.UserID, deckID)
	if err != nil {
		if errors.Is(err, util.ErrDeckNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deck": deck, "cards": cards})
}

// DeleteDeck godoc
// @Summary Delete a deck and its cards
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path int true "deck id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/decks/{id} [delete]
func (c *FlashcardController) DeleteDeck(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deckID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.FlashcardService.DeleteDeck(claims.UserID, deckID); err != nil {
		if errors.Is(err, util.ErrDeckNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// CreateCard godoc
// @Summary Add a card to a deck
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "deck id"
// @Param body body service.CreateCardRequest true "card sides"
// @Success 201 {object} util.Response{data=model.Flashcard}
// @Router /api/decks/{id}/cards [post]
func (c *FlashcardController) CreateCard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deckID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	card, err := c.FlashcardService.CreateCard(claims.UserID, deckID, req)
	if err != nil {
		if errors.Is(err, util.ErrDeckNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, card)
}

// GenerateCards godoc
// @Summary Generate cards with AI
// @Tags flashcards
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "deck id"
// @Param body body service.GenerateCardsRequest true "topic and count"
// @Success 201 {object} util.Response{data=[]model.Flashcard}
// @Failure 502 {object} util.Response
// @Router /api/decks/{id}/generate [post]
func (c *FlashcardController) GenerateCards(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deckID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req service.GenerateCardsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cards, err := c.FlashcardService.GenerateCards(claims.UserID, deckID, req)
	if err != nil {
		if errors.Is(err, util.ErrDeckNotFound) {
			util.NotFound(ctx)
		} else {
			util.Error(ctx, http.StatusBadGateway, "card generation failed: "+err.Error())
		}
		return
	}
	util.Created(ctx, cards)
}

// ReviewCard godoc
// @Summary Record a card review
// @Description Bumps the review count and awards review XP
// @Tags flashcards
// @Produce json
// @Security BearerAuth
// @Param id path int true "deck id"
// @Param cardId path int true "card id"
// @Success 200 {object} util.Response{data=service.ReviewCardResponse}
// @Failure 404 {object} util.Response
// @Router /api/decks/{id}/cards/{cardId}/review [post]
func (c *FlashcardController) ReviewCard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	deckID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	cardID, ok := parseIDParam(ctx, "cardId")
	if !ok {
		return
	}

	resp, err := c.FlashcardService.ReviewCard(claims.UserID, deckID, cardID)
	if err != nil {
		if errors.Is(err, util.ErrDeckNotFound) || errors.Is(err, util.ErrCardNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, resp)
}
