package service

import (
	"encoding/json"
	"fmt"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"
)

type StudyPlanService struct {
	PlanRepo *repository.StudyPlanRepository
	AI       *AIService
	Progress *ProgressService
}

func NewStudyPlanService(planRepo *repository.StudyPlanRepository, ai *AIService, progress *ProgressService) *StudyPlanService {
	return &StudyPlanService{
		PlanRepo: planRepo,
		AI:       ai,
		Progress: progress,
	}
}

const plannerSystemPrompt = "You build day-by-day study schedules. Reply with " +
	"a JSON array only, no prose. Each element must have the keys \"day\" " +
	"(1-based day number), \"date\" (YYYY-MM-DD or empty), \"focus\" (the " +
	"day's theme) and \"tasks\" (array of short task strings)."

type CreatePlanRequest struct {
	Goal        string  `json:"goal" binding:"required"`
	ExamDate    string  `json:"examDate"`
	Days        int     `json:"days"`
	HoursPerDay float64 `json:"hoursPerDay"`
}

type StudyPlanView struct {
	*model.StudyPlan
	Days []model.PlanDay `json:"days"`
}

type CreatePlanResponse struct {
	Plan     *StudyPlanView   `json:"plan"`
	Progress *ActivityOutcome `json:"progress"`
}

// CreatePlan asks the model for a schedule toward the goal, stores it and
// feeds the progress ledger.
func (s *StudyPlanService) CreatePlan(userID uint, req CreatePlanRequest) (*CreatePlanResponse, error) {
	if req.Days < 1 || req.Days > 90 {
		req.Days = 7
	}
	if req.HoursPerDay <= 0 || req.HoursPerDay > 16 {
		req.HoursPerDay = 2
	}

	prompt := fmt.Sprintf("Build a %d-day study plan for the goal %q with about %.1f hours per day.",
		req.Days, req.Goal, req.HoursPerDay)
	if req.ExamDate != "" {
		prompt += fmt.Sprintf(" The exam is on %s.", req.ExamDate)
	}

	answer, err := s.AI.Chat(prompt, plannerSystemPrompt, nil)
	if err != nil {
		return nil, err
	}

	payload := extractJSONArray(answer)
	if payload == "" {
		return nil, fmt.Errorf("AI reply contains no JSON array")
	}

	var days []model.PlanDay
	if err := json.Unmarshal([]byte(payload), &days); err != nil {
		return nil, fmt.Errorf("failed to parse study plan: %w", err)
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("AI returned an empty plan")
	}

	encoded, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}

	plan := &model.StudyPlan{
		UserID:      userID,
		Goal:        req.Goal,
		ExamDate:    req.ExamDate,
		HoursPerDay: req.HoursPerDay,
		Plan:        string(encoded),
	}
	if err := s.PlanRepo.Create(plan); err != nil {
		return nil, err
	}

	outcome, err := s.Progress.RecordStudyPlanCreated(userID)
	if err != nil {
		return nil, err
	}

	return &CreatePlanResponse{
		Plan:     &StudyPlanView{StudyPlan: plan, Days: days},
		Progress: outcome,
	}, nil
}

func (s *StudyPlanService) GetPlan(userID, planID uint) (*StudyPlanView, error) {
	plan, err := s.PlanRepo.FindByIDAndUserID(planID, userID)
	if err != nil {
		return nil, util.ErrPlanNotFound
	}

	days, err := plan.DecodeDays()
	if err != nil {
		return nil, err
	}
	return &StudyPlanView{StudyPlan: plan, Days: days}, nil
}

func (s *StudyPlanService) ListPlans(userID uint) ([]model.StudyPlan, error) {
	return s.PlanRepo.FindByUserID(userID)
}

func (s *StudyPlanService) DeletePlan(userID, planID uint) error {
	plan, err := s.PlanRepo.FindByIDAndUserID(planID, userID)
	if err != nil {
		return util.ErrPlanNotFound
	}
	return s.PlanRepo.Delete(plan)
}
