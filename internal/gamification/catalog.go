package gamification

// ActivityType identifies an XP-earning action.
type ActivityType string

const (
	ActivityCorrectStep     ActivityType = "correct_step"
	ActivitySubmitStep      ActivityType = "submit_step"
	ActivityCompleteQuiz    ActivityType = "complete_quiz"
	ActivityPerfectQuiz     ActivityType = "perfect_quiz"
	ActivityReviewFlashcard ActivityType = "review_flashcard"

	// These carry no base amount; callers must pass an explicit override.
	ActivityMissionComplete ActivityType = "mission_complete"
	ActivityStreakBonus     ActivityType = "streak_bonus"
)

var baseXP = map[ActivityType]int{
	ActivityCorrectStep:     10,
	ActivitySubmitStep:      2,
	ActivityCompleteQuiz:    50,
	ActivityPerfectQuiz:     25,
	ActivityReviewFlashcard: 3,
}

// MissionCategory groups daily missions by the activity that advances them.
type MissionCategory string

const (
	CategoryQuiz      MissionCategory = "quiz"
	CategoryFlashcard MissionCategory = "flashcard"
	CategoryDoubt     MissionCategory = "doubt"
	CategoryStreak    MissionCategory = "streak" // reserved, no mission drives it yet
	CategoryStudy     MissionCategory = "study"
)

// Counter names tracked per account. Counters only ever go up.
const (
	CounterQuizzesCompleted   = "quizzesCompleted"
	CounterFlashcardsReviewed = "flashcardsReviewed"
	CounterDoubtsAsked        = "doubtsAsked"
	CounterStepsSubmitted     = "stepsSubmitted"
	CounterCorrectSteps       = "correctSteps"
	CounterStudyPlansCreated  = "studyPlansCreated"
	CounterImagesUploaded     = "imagesUploaded"
)

const (
	BadgeFirstStep    = "first_step"
	BadgeCorrectStep  = "correct_step"
	BadgeQuizMaster   = "quiz_master"
	BadgeFlashcardFan = "flashcard_fan"
	BadgeStudyPlanner = "study_planner"
	BadgeDoubtSolver  = "doubt_solver"
	BadgeOCRExplorer  = "ocr_explorer"
	BadgeWeekStreak   = "week_streak"
	BadgeLevelTen     = "level_ten"
)

// Badge is an immutable catalog entry. Per-user unlock state lives in State.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement string `json:"requirement"`
	XPReward    int    `json:"xpReward"`
}

// BadgeCatalog lists every badge the platform can award.
var BadgeCatalog = []Badge{
	{ID: BadgeFirstStep, Name: "First Step", Description: "Submit your first solution step", Icon: "footprints", Requirement: "Submit 1 solution step", XPReward: 20},
	{ID: BadgeCorrectStep, Name: "Sharp Thinker", Description: "Get a solution step right", Icon: "target", Requirement: "Submit 1 correct step", XPReward: 30},
	{ID: BadgeQuizMaster, Name: "Quiz Master", Description: "Complete five quizzes", Icon: "trophy", Requirement: "Complete 5 quizzes", XPReward: 100},
	{ID: BadgeFlashcardFan, Name: "Flashcard Fan", Description: "Review fifty flashcards", Icon: "layers", Requirement: "Review 50 flashcards", XPReward: 80},
	{ID: BadgeStudyPlanner, Name: "Study Planner", Description: "Create your first study plan", Icon: "calendar", Requirement: "Create 1 study plan", XPReward: 40},
	{ID: BadgeDoubtSolver, Name: "Doubt Solver", Description: "Ask ten doubts", Icon: "message-circle", Requirement: "Ask 10 doubts", XPReward: 90},
	{ID: BadgeOCRExplorer, Name: "OCR Explorer", Description: "Upload five problem images", Icon: "camera", Requirement: "Upload 5 images", XPReward: 60},
	{ID: BadgeWeekStreak, Name: "Week Warrior", Description: "Study seven days in a row", Icon: "flame", Requirement: "Reach a 7-day streak", XPReward: 150},
	{ID: BadgeLevelTen, Name: "Double Digits", Description: "Reach level ten", Icon: "star", Requirement: "Reach level 10", XPReward: 200},
}

// BadgeByID looks up a catalog entry.
func BadgeByID(id string) (Badge, bool) {
	for _, b := range BadgeCatalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// counterRule unlocks a badge once a counter satisfies its threshold.
// Exact rules fire on the first occurrence only; the others are cumulative.
type counterRule struct {
	Counter   string
	Threshold int
	Exact     bool
	BadgeID   string
}

var counterRules = []counterRule{
	{Counter: CounterStepsSubmitted, Threshold: 1, Exact: true, BadgeID: BadgeFirstStep},
	{Counter: CounterCorrectSteps, Threshold: 1, Exact: true, BadgeID: BadgeCorrectStep},
	{Counter: CounterQuizzesCompleted, Threshold: 5, BadgeID: BadgeQuizMaster},
	{Counter: CounterFlashcardsReviewed, Threshold: 50, BadgeID: BadgeFlashcardFan},
	{Counter: CounterStudyPlansCreated, Threshold: 1, Exact: true, BadgeID: BadgeStudyPlanner},
	{Counter: CounterDoubtsAsked, Threshold: 10, BadgeID: BadgeDoubtSolver},
	{Counter: CounterImagesUploaded, Threshold: 5, BadgeID: BadgeOCRExplorer},
}

// Mission is an immutable daily goal. Per-user progress lives in State and
// resets each calendar day.
type Mission struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    MissionCategory `json:"category"`
	Target      int             `json:"target"`
	XPReward    int             `json:"xpReward"`
}

// MissionCatalog lists the missions issued fresh every day.
var MissionCatalog = []Mission{
	{ID: "daily_quiz", Title: "Quiz Time", Description: "Complete 2 quizzes today", Category: CategoryQuiz, Target: 2, XPReward: 100},
	{ID: "daily_flashcards", Title: "Card Sprint", Description: "Review 10 flashcards today", Category: CategoryFlashcard, Target: 10, XPReward: 50},
	{ID: "daily_doubt", Title: "Stay Curious", Description: "Ask 1 doubt today", Category: CategoryDoubt, Target: 1, XPReward: 30},
	{ID: "daily_study", Title: "Plan Ahead", Description: "Work on a study plan today", Category: CategoryStudy, Target: 1, XPReward: 40},
}

// MissionByID looks up a catalog entry.
func MissionByID(id string) (Mission, bool) {
	for _, m := range MissionCatalog {
		if m.ID == id {
			return m, true
		}
	}
	return Mission{}, false
}

// streakTiers map streak length to an XP multiplier. Evaluated from the
// highest threshold down; lower bounds are inclusive.
var streakTiers = []struct {
	Days       int
	Multiplier float64
}{
	{30, 2.00},
	{14, 1.75},
	{7, 1.50},
	{3, 1.25},
}

// levelTitles map a level to an honorific. Bands are inclusive upper bounds.
var levelTitles = []struct {
	MaxLevel int
	Title    string
}{
	{5, "Novice Learner"},
	{10, "Eager Student"},
	{20, "Dedicated Scholar"},
	{35, "Knowledge Seeker"},
	{50, "Subject Adept"},
	{75, "Learned Sage"},
}

const topLevelTitle = "Grand Master"
