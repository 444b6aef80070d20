package service

import (
	"fmt"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"
	"strings"
)

type DoubtService struct {
	DoubtRepo *repository.DoubtRepository
	AI        *AIService
	Progress  *ProgressService
	Storage   *StorageService
}

func NewDoubtService(doubtRepo *repository.DoubtRepository, ai *AIService, progress *ProgressService, storage *StorageService) *DoubtService {
	return &DoubtService{
		DoubtRepo: doubtRepo,
		AI:        ai,
		Progress:  progress,
		Storage:   storage,
	}
}

const tutorSystemPrompt = "You are a patient tutor. Explain concepts step by " +
	"step, ask guiding questions instead of handing over full solutions, and " +
	"keep answers focused on the student's subject."

const stepGraderSystemPrompt = "You grade one step of a student's solution. " +
	"Start your reply with exactly \"VERDICT: CORRECT\" or \"VERDICT: INCORRECT\" " +
	"on its own line, then give short feedback explaining why."

type CreateSessionRequest struct {
	Subject string `json:"subject"`
	Title   string `json:"title" binding:"required"`
}

func (s *DoubtService) CreateSession(userID uint, req CreateSessionRequest) (*model.DoubtSession, error) {
	session := &model.DoubtSession{
		UserID:  userID,
		Subject: req.Subject,
		Title:   req.Title,
	}
	if err := s.DoubtRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DoubtService) ListSessions(userID uint) ([]model.DoubtSession, error) {
	return s.DoubtRepo.FindSessionsByUserID(userID)
}

func (s *DoubtService) GetSession(userID, sessionID uint) (*model.DoubtSession, []model.DoubtMessage, error) {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, nil, util.ErrSessionNotFound
	}
	messages, err := s.DoubtRepo.FindMessagesBySessionID(session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, messages, nil
}

func (s *DoubtService) DeleteSession(userID, sessionID uint) error {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return util.ErrSessionNotFound
	}
	return s.DoubtRepo.DeleteSession(session)
}

func (s *DoubtService) history(sessionID uint) ([]AIChatMessage, error) {
	messages, err := s.DoubtRepo.FindMessagesBySessionID(sessionID)
	if err != nil {
		return nil, err
	}

	history := make([]AIChatMessage, 0, len(messages))
	for _, m := range messages {
		content := m.Content
		if m.ImageURL != "" && content == "" {
			content = "(student attached an image)"
		}
		history = append(history, AIChatMessage{Role: m.Role, Content: content})
	}
	return history, nil
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	ImageURL string `json:"imageUrl"`
}

type AskResponse struct {
	Answer   *model.DoubtMessage `json:"answer"`
	Progress *ActivityOutcome    `json:"progress"`
}

// Ask appends the question, gets a blocking tutor reply, persists both turns
// and feeds the progress ledger.
func (s *DoubtService) Ask(userID, sessionID uint, req AskRequest) (*AskResponse, error) {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}

	history, err := s.history(session.ID)
	if err != nil {
		return nil, err
	}

	question := &model.DoubtMessage{
		SessionID: session.ID,
		Role:      "user",
		Content:   req.Question,
		ImageURL:  req.ImageURL,
	}
	if err := s.DoubtRepo.CreateMessage(question); err != nil {
		return nil, err
	}

	system := tutorSystemPrompt
	if session.Subject != "" {
		system += " The subject is " + session.Subject + "."
	}

	reply, err := s.AI.Chat(req.Question, system, history)
	if err != nil {
		return nil, err
	}

	answer := &model.DoubtMessage{
		SessionID: session.ID,
		Role:      "assistant",
		Content:   reply,
	}
	if err := s.DoubtRepo.CreateMessage(answer); err != nil {
		return nil, err
	}

	outcome, err := s.Progress.RecordDoubtAsked(userID)
	if err != nil {
		return nil, err
	}

	return &AskResponse{Answer: answer, Progress: outcome}, nil
}

// AskStream is the streaming variant of Ask. The user turn is persisted up
// front; the full assistant reply must be saved by the caller via
// SaveAssistantMessage once the stream ends.
func (s *DoubtService) AskStream(userID, sessionID uint, req AskRequest) (<-chan string, <-chan error, error) {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, nil, util.ErrSessionNotFound
	}

	history, err := s.history(session.ID)
	if err != nil {
		return nil, nil, err
	}

	question := &model.DoubtMessage{
		SessionID: session.ID,
		Role:      "user",
		Content:   req.Question,
		ImageURL:  req.ImageURL,
	}
	if err := s.DoubtRepo.CreateMessage(question); err != nil {
		return nil, nil, err
	}

	system := tutorSystemPrompt
	if session.Subject != "" {
		system += " The subject is " + session.Subject + "."
	}

	out, errChan := s.AI.ChatStream(req.Question, system, history)
	return out, errChan, nil
}

// SaveAssistantMessage persists the assembled streamed reply and records the
// doubt activity.
func (s *DoubtService) SaveAssistantMessage(userID, sessionID uint, content string) (*ActivityOutcome, error) {
	answer := &model.DoubtMessage{
		SessionID: sessionID,
		Role:      "assistant",
		Content:   content,
	}
	if err := s.DoubtRepo.CreateMessage(answer); err != nil {
		return nil, err
	}
	return s.Progress.RecordDoubtAsked(userID)
}

type SubmitStepRequest struct {
	Step string `json:"step" binding:"required"`
}

type SubmitStepResponse struct {
	Step     *model.SolutionStep `json:"step"`
	Progress *ActivityOutcome    `json:"progress"`
}

// SubmitStep has the AI grade one solution step, stores the verdict and
// feeds the progress ledger.
func (s *DoubtService) SubmitStep(userID, sessionID uint, req SubmitStepRequest) (*SubmitStepResponse, error) {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}

	history, err := s.history(session.ID)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf("Grade this solution step: %s", req.Step)
	reply, err := s.AI.Chat(prompt, stepGraderSystemPrompt, history)
	if err != nil {
		return nil, err
	}

	correct, feedback := parseStepVerdict(reply)

	step := &model.SolutionStep{
		SessionID: session.ID,
		UserID:    userID,
		Content:   req.Step,
		Correct:   correct,
		Feedback:  feedback,
	}
	if err := s.DoubtRepo.CreateStep(step); err != nil {
		return nil, err
	}

	outcome, err := s.Progress.RecordStepSubmission(userID, correct)
	if err != nil {
		return nil, err
	}

	return &SubmitStepResponse{Step: step, Progress: outcome}, nil
}

// parseStepVerdict splits the grader reply into a verdict and the remaining
// feedback. A reply without a recognizable verdict counts as incorrect.
func parseStepVerdict(reply string) (bool, string) {
	trimmed := strings.TrimSpace(reply)
	upper := strings.ToUpper(trimmed)

	var correct bool
	switch {
	case strings.HasPrefix(upper, "VERDICT: CORRECT"):
		correct = true
		trimmed = trimmed[len("VERDICT: CORRECT"):]
	case strings.HasPrefix(upper, "VERDICT: INCORRECT"):
		trimmed = trimmed[len("VERDICT: INCORRECT"):]
	default:
		return false, trimmed
	}

	return correct, strings.TrimSpace(trimmed)
}

func (s *DoubtService) ListSteps(userID, sessionID uint) ([]model.SolutionStep, error) {
	session, err := s.DoubtRepo.FindSessionByIDAndUserID(sessionID, userID)
	if err != nil {
		return nil, util.ErrSessionNotFound
	}
	return s.DoubtRepo.FindStepsBySessionID(session.ID)
}

type UploadImageResponse struct {
	URL      string           `json:"url"`
	Progress *ActivityOutcome `json:"progress"`
}

// UploadImage stores a problem photo and records the upload activity. The
// returned URL goes into a follow-up Ask as imageUrl.
func (s *DoubtService) UploadImage(userID uint, filename string, data []byte, contentType string) (*UploadImageResponse, error) {
	url, err := s.Storage.Save(filename, data, contentType)
	if err != nil {
		return nil, err
	}

	outcome, err := s.Progress.RecordImageUpload(userID)
	if err != nil {
		return nil, err
	}

	return &UploadImageResponse{URL: url, Progress: outcome}, nil
}
