package service

import (
	"learnquest_backend/internal/gamification"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/repository"
)

// DashboardService assembles the home-screen snapshot from the other
// services' data. It is read-only apart from the lazy mission-day roll that
// GetOverview triggers.
type DashboardService struct {
	Progress  *ProgressService
	QuizRepo  *repository.QuizRepository
	DoubtRepo *repository.DoubtRepository
	PlanRepo  *repository.StudyPlanRepository
}

func NewDashboardService(progress *ProgressService, quizRepo *repository.QuizRepository, doubtRepo *repository.DoubtRepository, planRepo *repository.StudyPlanRepository) *DashboardService {
	return &DashboardService{
		Progress:  progress,
		QuizRepo:  quizRepo,
		DoubtRepo: doubtRepo,
		PlanRepo:  planRepo,
	}
}

type Dashboard struct {
	Overview       *Overview                  `json:"overview"`
	Missions       []gamification.MissionView `json:"missions"`
	RecentResults  []model.QuizResult         `json:"recentResults"`
	RecentSessions []model.DoubtSession       `json:"recentSessions"`
	ActivePlans    []model.StudyPlan          `json:"activePlans"`
}

func (s *DashboardService) GetDashboard(userID uint) (*Dashboard, error) {
	overview, err := s.Progress.GetOverview(userID)
	if err != nil {
		return nil, err
	}

	missions, err := s.Progress.GetMissions(userID)
	if err != nil {
		return nil, err
	}

	results, err := s.QuizRepo.FindResultsByUserID(userID, 5)
	if err != nil {
		return nil, err
	}

	sessions, err := s.DoubtRepo.FindSessionsByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 5 {
		sessions = sessions[:5]
	}

	plans, err := s.PlanRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(plans) > 3 {
		plans = plans[:3]
	}

	return &Dashboard{
		Overview:       overview,
		Missions:       missions,
		RecentResults:  results,
		RecentSessions: sessions,
		ActivePlans:    plans,
	}, nil
}
