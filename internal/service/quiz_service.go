package service

import (
	"encoding/json"
	"fmt"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"
)

type QuizService struct {
	QuizRepo *repository.QuizRepository
	AI       *AIService
	Progress *ProgressService
}

func NewQuizService(quizRepo *repository.QuizRepository, ai *AIService, progress *ProgressService) *QuizService {
	return &QuizService{
		QuizRepo: quizRepo,
		AI:       ai,
		Progress: progress,
	}
}

type GenerateQuizRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// QuizQuestionView is a question as shown to the taker: no answer index and
// no explanation until submission.
type QuizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizView struct {
	*model.Quiz
	Questions []QuizQuestionView `json:"questions"`
}

const quizSystemPrompt = "You are a quiz generator for a learning app. " +
	"Reply with a JSON array only, no prose. Each element must have the keys " +
	"\"question\" (string), \"options\" (array of exactly 4 strings), " +
	"\"answer\" (0-based index of the correct option) and \"explanation\" (string)."

// GenerateQuiz asks the model for a question set on the topic and stores it.
func (s *QuizService) GenerateQuiz(userID uint, req GenerateQuizRequest) (*QuizView, error) {
	if req.Count < 1 || req.Count > 20 {
		req.Count = 5
	}
	if req.Difficulty == "" {
		req.Difficulty = "medium"
	}

	prompt := fmt.Sprintf("Generate %d multiple-choice questions about %q at %s difficulty.",
		req.Count, req.Topic, req.Difficulty)

	answer, err := s.AI.Chat(prompt, quizSystemPrompt, nil)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuizQuestions(answer)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		UserID:     userID,
		Topic:      req.Topic,
		Difficulty: req.Difficulty,
		Questions:  string(encoded),
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	return quizView(quiz, questions), nil
}

// parseQuizQuestions decodes the model's reply and rejects malformed sets.
func parseQuizQuestions(raw string) ([]model.QuizQuestion, error) {
	payload := extractJSONArray(raw)
	if payload == "" {
		return nil, fmt.Errorf("AI reply contains no JSON array")
	}

	var questions []model.QuizQuestion
	if err := json.Unmarshal([]byte(payload), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse quiz questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("AI returned an empty question set")
	}

	for i, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d is malformed", i+1)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("question %d has an out-of-range answer index", i+1)
		}
	}
	return questions, nil
}

func quizView(quiz *model.Quiz, questions []model.QuizQuestion) *QuizView {
	views := make([]QuizQuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuizQuestionView{Question: q.Question, Options: q.Options})
	}
	return &QuizView{Quiz: quiz, Questions: views}
}

// GetQuiz returns the quiz with answer keys stripped.
func (s *QuizService) GetQuiz(userID, quizID uint) (*QuizView, error) {
	quiz, err := s.QuizRepo.FindByIDAndUserID(quizID, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}

	questions, err := quiz.DecodeQuestions()
	if err != nil {
		return nil, err
	}
	return quizView(quiz, questions), nil
}

// ListQuizzes returns the user's recent quizzes without question bodies.
func (s *QuizService) ListQuizzes(userID uint, limit int) ([]model.Quiz, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.QuizRepo.FindByUserID(userID, limit)
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// QuestionReview is the per-question breakdown returned after grading.
type QuestionReview struct {
	Question    string `json:"question"`
	YourAnswer  int    `json:"yourAnswer"`
	Correct     int    `json:"correct"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation,omitempty"`
}

type SubmitQuizResponse struct {
	Score    int              `json:"score"`
	Total    int              `json:"total"`
	Perfect  bool             `json:"perfect"`
	Review   []QuestionReview `json:"review"`
	Progress *ActivityOutcome `json:"progress"`
}

// SubmitQuiz grades the answers, records the result and feeds the progress
// ledger. A quiz can only be submitted once.
func (s *QuizService) SubmitQuiz(userID, quizID uint, req SubmitQuizRequest) (*SubmitQuizResponse, error) {
	quiz, err := s.QuizRepo.FindByIDAndUserID(quizID, userID)
	if err != nil {
		return nil, util.ErrQuizNotFound
	}
	if quiz.Submitted {
		return nil, util.ErrQuizSubmitted
	}

	questions, err := quiz.DecodeQuestions()
	if err != nil {
		return nil, err
	}

	score := 0
	review := make([]QuestionReview, 0, len(questions))
	for i, q := range questions {
		given := -1
		if i < len(req.Answers) {
			given = req.Answers[i]
		}
		correct := given == q.Answer
		if correct {
			score++
		}
		review = append(review, QuestionReview{
			Question:    q.Question,
			YourAnswer:  given,
			Correct:     q.Answer,
			IsCorrect:   correct,
			Explanation: q.Explanation,
		})
	}

	perfect := score == len(questions)

	outcome, err := s.Progress.RecordQuizCompletion(userID, perfect)
	if err != nil {
		return nil, err
	}

	quiz.Submitted = true
	if err := s.QuizRepo.Update(quiz); err != nil {
		return nil, err
	}

	result := &model.QuizResult{
		UserID:   userID,
		QuizID:   quiz.ID,
		Score:    score,
		Total:    len(questions),
		Perfect:  perfect,
		XPEarned: outcome.XPGained,
	}
	if err := s.QuizRepo.CreateResult(result); err != nil {
		return nil, err
	}

	return &SubmitQuizResponse{
		Score:    score,
		Total:    len(questions),
		Perfect:  perfect,
		Review:   review,
		Progress: outcome,
	}, nil
}
