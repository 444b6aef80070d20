package repository

import (
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

type DoubtRepository struct {
	DB *gorm.DB
}

func NewDoubtRepository(db *gorm.DB) *DoubtRepository {
	return &DoubtRepository{DB: db}
}

func (r *DoubtRepository) CreateSession(session *model.DoubtSession) error {
	return r.DB.Create(session).Error
}

func (r *DoubtRepository) FindSessionByIDAndUserID(sessionID, userID uint) (*model.DoubtSession, error) {
	var session model.DoubtSession
	err := r.DB.Where("id = ? AND user_id = ?", sessionID, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *DoubtRepository) FindSessionsByUserID(userID uint) ([]model.DoubtSession, error) {
	var sessions []model.DoubtSession
	err := r.DB.Where("user_id = ?", userID).Order("updated_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *DoubtRepository) DeleteSession(session *model.DoubtSession) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", session.ID).Delete(&model.DoubtMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", session.ID).Delete(&model.SolutionStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(session).Error
	})
}

func (r *DoubtRepository) CreateMessage(message *model.DoubtMessage) error {
	return r.DB.Create(message).Error
}

func (r *DoubtRepository) FindMessagesBySessionID(sessionID uint) ([]model.DoubtMessage, error) {
	var messages []model.DoubtMessage
	err := r.DB.Where("session_id = ?", sessionID).Order("id ASC").Find(&messages).Error
	return messages, err
}

func (r *DoubtRepository) CreateStep(step *model.SolutionStep) error {
	return r.DB.Create(step).Error
}

func (r *DoubtRepository) FindStepsBySessionID(sessionID uint) ([]model.SolutionStep, error) {
	var steps []model.SolutionStep
	err := r.DB.Where("session_id = ?", sessionID).Order("id ASC").Find(&steps).Error
	return steps, err
}
