package service

import (
	"learnquest_backend/internal/gamification"
	"learnquest_backend/internal/repository"
	"learnquest_backend/internal/util"
	"learnquest_backend/pkg/logger"
	"learnquest_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// ProgressService is the host around the gamification ledger. Every
// operation loads a fresh state, lazily rolls the mission day, mutates the
// ledger, and saves best-effort: a failed save is logged but never fails the
// request, since the next successful save reconciles.
type ProgressService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository

	// Now is the injected clock. Streak logic is calendar-date sensitive, so
	// tests pin it to fixed dates.
	Now func() time.Time
}

func NewProgressService(userRepo *repository.UserRepository, progressRepo *repository.ProgressRepository) *ProgressService {
	return &ProgressService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		Now:          time.Now,
	}
}

// ActivityOutcome summarizes one recorded activity for the UI: total XP
// gained (including mission payouts), level movement, and anything newly
// unlocked or completed.
type ActivityOutcome struct {
	XPGained          int                              `json:"xpGained"`
	LeveledUp         bool                             `json:"leveledUp"`
	NewLevel          int                              `json:"newLevel"`
	Streak            int                              `json:"streak"`
	UnlockedBadges    []gamification.Badge             `json:"unlockedBadges"`
	CompletedMissions []gamification.MissionCompletion `json:"completedMissions"`
}

func (s *ProgressService) loadLedger(userID uint) (*gamification.Ledger, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}

	state, err := s.ProgressRepo.LoadState(user)
	if err != nil {
		return nil, err
	}

	today := s.Now().Format(gamification.DateLayout)
	if state.LastActiveDate == "" {
		state.LastActiveDate = today
	}
	if state.LastMissionReset == "" {
		state.LastMissionReset = today
	}

	ledger := gamification.NewLedger(state, s.Now)
	ledger.EnsureMissionDay()
	return ledger, nil
}

func (s *ProgressService) save(userID uint, ledger *gamification.Ledger) {
	if err := s.ProgressRepo.SaveState(userID, ledger.State()); err != nil {
		logger.Log.Error("failed to persist progress",
			zap.Uint("userId", userID),
			zap.Error(err))
	}
}

func (s *ProgressService) finish(userID uint, ledger *gamification.Ledger, startLevel, gained int, completions []gamification.MissionCompletion) *ActivityOutcome {
	unlocked := ledger.DrainUnlocks()
	for _, b := range unlocked {
		monitoring.BadgesUnlocked.WithLabelValues(b.ID).Inc()
	}

	state := ledger.State()
	out := &ActivityOutcome{
		XPGained:          gained,
		LeveledUp:         state.Level > startLevel,
		NewLevel:          state.Level,
		Streak:            state.Streak,
		UnlockedBadges:    unlocked,
		CompletedMissions: completions,
	}
	if out.UnlockedBadges == nil {
		out.UnlockedBadges = []gamification.Badge{}
	}
	if out.CompletedMissions == nil {
		out.CompletedMissions = []gamification.MissionCompletion{}
	}

	s.save(userID, ledger)
	return out
}

func (s *ProgressService) award(ledger *gamification.Ledger, activity gamification.ActivityType, override int) int {
	res := ledger.AwardXP(activity, override)
	monitoring.XPAwarded.WithLabelValues(string(activity)).Add(float64(res.XPGained))
	return res.XPGained
}

// RecordQuizCompletion awards quiz XP (plus the perfect bonus), bumps the
// quiz counter and advances quiz missions.
func (s *ProgressService) RecordQuizCompletion(userID uint, perfect bool) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	gained := s.award(ledger, gamification.ActivityCompleteQuiz, 0)
	if perfect {
		gained += s.award(ledger, gamification.ActivityPerfectQuiz, 0)
	}
	ledger.IncrementCounter(gamification.CounterQuizzesCompleted)
	completions := ledger.AdvanceMission(gamification.CategoryQuiz, 1)
	for _, c := range completions {
		gained += c.Result.XPGained
	}

	return s.finish(userID, ledger, startLevel, gained, completions), nil
}

// RecordFlashcardReview awards review XP, bumps the review counter and
// advances flashcard missions. count covers batch reviews.
func (s *ProgressService) RecordFlashcardReview(userID uint, count int) (*ActivityOutcome, error) {
	if count < 1 {
		count = 1
	}

	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	gained := 0
	for i := 0; i < count; i++ {
		gained += s.award(ledger, gamification.ActivityReviewFlashcard, 0)
		ledger.IncrementCounter(gamification.CounterFlashcardsReviewed)
	}
	completions := ledger.AdvanceMission(gamification.CategoryFlashcard, count)
	for _, c := range completions {
		gained += c.Result.XPGained
	}

	return s.finish(userID, ledger, startLevel, gained, completions), nil
}

// RecordDoubtAsked bumps the doubt counter and advances doubt missions.
// Asking itself carries no base XP; rewards come from missions and badges.
func (s *ProgressService) RecordDoubtAsked(userID uint) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	ledger.IncrementCounter(gamification.CounterDoubtsAsked)
	completions := ledger.AdvanceMission(gamification.CategoryDoubt, 1)
	gained := 0
	for _, c := range completions {
		gained += c.Result.XPGained
	}

	return s.finish(userID, ledger, startLevel, gained, completions), nil
}

// RecordStepSubmission awards submission XP, plus the correct-step award
// when the AI judged the step right, and bumps both step counters.
func (s *ProgressService) RecordStepSubmission(userID uint, correct bool) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	gained := s.award(ledger, gamification.ActivitySubmitStep, 0)
	ledger.IncrementCounter(gamification.CounterStepsSubmitted)
	if correct {
		gained += s.award(ledger, gamification.ActivityCorrectStep, 0)
		ledger.IncrementCounter(gamification.CounterCorrectSteps)
	}

	return s.finish(userID, ledger, startLevel, gained, nil), nil
}

// RecordStudyPlanCreated bumps the plan counter and advances study missions.
func (s *ProgressService) RecordStudyPlanCreated(userID uint) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	ledger.IncrementCounter(gamification.CounterStudyPlansCreated)
	completions := ledger.AdvanceMission(gamification.CategoryStudy, 1)
	gained := 0
	for _, c := range completions {
		gained += c.Result.XPGained
	}

	return s.finish(userID, ledger, startLevel, gained, completions), nil
}

// RecordImageUpload bumps the upload counter (OCR explorer track).
func (s *ProgressService) RecordImageUpload(userID uint) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()
	ledger.IncrementCounter(gamification.CounterImagesUploaded)

	return s.finish(userID, ledger, startLevel, 0, nil), nil
}

// Checkin rolls the daily streak without recording any other activity.
// Called on page load; calling it again the same day changes nothing.
func (s *ProgressService) Checkin(userID uint) (*ActivityOutcome, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	startLevel := ledger.State().Level

	ledger.RollDailyStreak()

	return s.finish(userID, ledger, startLevel, 0, nil), nil
}

// Overview is the derived snapshot the dashboard and profile render.
type Overview struct {
	XP            int                        `json:"xp"`
	Level         int                        `json:"level"`
	LevelTitle    string                     `json:"levelTitle"`
	LevelProgress gamification.LevelProgress `json:"levelProgress"`
	Streak        int                        `json:"streak"`
	Multiplier    float64                    `json:"multiplier"`
	Counters      map[string]int             `json:"counters"`
	BadgeCount    int                        `json:"badgeCount"`
}

// GetOverview returns the user's current derived progress snapshot.
func (s *ProgressService) GetOverview(userID uint) (*Overview, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	// EnsureMissionDay may have rolled the mission date; keep storage in step.
	s.save(userID, ledger)

	state := ledger.State()
	unlocked := 0
	for _, bs := range state.Badges {
		if bs.Unlocked {
			unlocked++
		}
	}

	progress := ledger.LevelProgress()
	// Display clamp; the ledger itself reports the raw ratio.
	if progress.Percent > 100 {
		progress.Percent = 100
	}
	if progress.Percent < 0 {
		progress.Percent = 0
	}

	return &Overview{
		XP:            state.XP,
		Level:         state.Level,
		LevelTitle:    ledger.LevelTitle(),
		LevelProgress: progress,
		Streak:        state.Streak,
		Multiplier:    ledger.StreakMultiplier(),
		Counters:      state.Counters,
		BadgeCount:    unlocked,
	}, nil
}

// GetBadges returns the catalog overlaid with the user's unlocks.
func (s *ProgressService) GetBadges(userID uint) ([]gamification.BadgeView, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	return ledger.Badges(), nil
}

// GetMissions returns today's missions with the user's progress.
func (s *ProgressService) GetMissions(userID uint) ([]gamification.MissionView, error) {
	ledger, err := s.loadLedger(userID)
	if err != nil {
		return nil, err
	}
	s.save(userID, ledger)
	return ledger.Missions(), nil
}
