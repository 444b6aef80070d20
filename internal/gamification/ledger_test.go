package gamification

import (
	"math"
	"testing"
	"time"
)

// clock returns a fixed-date clock the tests can retarget by reassigning day.
func clock(day *string) func() time.Time {
	return func() time.Time {
		t, err := time.Parse(DateLayout, *day)
		if err != nil {
			panic(err)
		}
		return t
	}
}

func newTestLedger(day string) (*Ledger, *string) {
	d := day
	return NewLedger(NewState(day), clock(&d)), &d
}

func TestLevelForXP_Monotonic(t *testing.T) {
	prev := 0
	for xp := 0; xp <= 20000; xp += 37 {
		level := LevelForXP(xp)
		if level < prev {
			t.Fatalf("level decreased: xp=%d level=%d prev=%d", xp, level, prev)
		}
		prev = level
	}
}

func TestLevelForXP_Boundaries(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{8099, 9},
		{8100, 10},
	}
	for _, tc := range tests {
		if got := LevelForXP(tc.xp); got != tc.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.level)
		}
	}
}

func TestStreakMultiplier_Tiers(t *testing.T) {
	tests := []struct {
		streak int
		want   float64
	}{
		{0, 1.00},
		{1, 1.00},
		{2, 1.00},
		{3, 1.25},
		{6, 1.25},
		{7, 1.50},
		{13, 1.50},
		{14, 1.75},
		{29, 1.75},
		{30, 2.00},
		{365, 2.00},
	}
	for _, tc := range tests {
		l, _ := newTestLedger("2026-03-01")
		l.State().Streak = tc.streak
		if got := l.StreakMultiplier(); got != tc.want {
			t.Errorf("streak %d: multiplier = %v, want %v", tc.streak, got, tc.want)
		}
	}
}

func TestAwardXP_BaseAmounts(t *testing.T) {
	tests := []struct {
		activity ActivityType
		override int
		streak   int
		want     int
	}{
		{ActivityCompleteQuiz, 0, 0, 50},
		{ActivityCorrectStep, 0, 7, 15},      // 10 * 1.50
		{ActivityReviewFlashcard, 0, 3, 3},   // floor(3 * 1.25) = 3
		{ActivityReviewFlashcard, 0, 30, 6},  // 3 * 2.00
		{ActivitySubmitStep, 0, 14, 3},       // floor(2 * 1.75) = 3
		{ActivityPerfectQuiz, 0, 0, 25},
		{ActivityMissionComplete, 100, 0, 100},
		{ActivityStreakBonus, 40, 7, 60},
		{ActivityMissionComplete, 0, 0, 0}, // no base, no override
		{ActivityCompleteQuiz, 80, 0, 80},  // override replaces base
	}
	for _, tc := range tests {
		l, _ := newTestLedger("2026-03-01")
		l.State().Streak = tc.streak
		res := l.AwardXP(tc.activity, tc.override)
		if res.XPGained != tc.want {
			t.Errorf("%s override=%d streak=%d: gained %d, want %d",
				tc.activity, tc.override, tc.streak, res.XPGained, tc.want)
		}
	}
}

func TestAwardXP_GainedMatchesFlooredProduct(t *testing.T) {
	for streak := 0; streak <= 35; streak++ {
		l, _ := newTestLedger("2026-03-01")
		l.State().Streak = streak
		mult := l.StreakMultiplier()
		res := l.AwardXP(ActivityCorrectStep, 0)
		want := int(math.Floor(10 * mult))
		if res.XPGained != want {
			t.Fatalf("streak %d: gained %d, want floor(10*%v)=%d", streak, res.XPGained, mult, want)
		}
	}
}

func TestAwardXP_LevelStaysOnSmallAward(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	res := l.AwardXP(ActivityCompleteQuiz, 0)
	if res.XPGained != 50 || res.LeveledUp || res.NewLevel != 1 {
		t.Fatalf("fresh complete_quiz: got %+v, want 50 XP at level 1", res)
	}
}

func TestAwardXP_LevelTenUnlocksBadge(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	res := l.AwardXP(ActivityStreakBonus, 8100)
	if !res.LeveledUp || res.NewLevel != 10 {
		t.Fatalf("expected level 10, got %+v", res)
	}

	badge, _ := BadgeByID(BadgeLevelTen)
	if got := l.State().XP; got != 8100+badge.XPReward {
		t.Errorf("XP = %d, want %d (flat badge reward added)", got, 8100+badge.XPReward)
	}

	unlocked := l.DrainUnlocks()
	if len(unlocked) != 1 || unlocked[0].ID != BadgeLevelTen {
		t.Fatalf("unlocks = %v, want [level_ten]", unlocked)
	}

	// Further awards at level >= 10 must not re-unlock.
	l.AwardXP(ActivityCompleteQuiz, 0)
	if got := l.DrainUnlocks(); len(got) != 0 {
		t.Errorf("badge re-unlocked: %v", got)
	}
}

func TestRollDailyStreak_IdempotentWithinDay(t *testing.T) {
	l, day := newTestLedger("2026-03-01")
	*day = "2026-03-02"

	l.RollDailyStreak()
	if l.State().Streak != 1 {
		t.Fatalf("streak = %d, want 1", l.State().Streak)
	}

	l.RollDailyStreak()
	l.RollDailyStreak()
	if l.State().Streak != 1 {
		t.Errorf("repeat rolls changed streak: %d", l.State().Streak)
	}
	if l.State().LastActiveDate != "2026-03-02" {
		t.Errorf("lastActiveDate = %s", l.State().LastActiveDate)
	}
}

func TestRollDailyStreak_SameDayAsCreation(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	l.RollDailyStreak()
	// Profile is created with lastActiveDate = today, so the creation-day
	// roll is a same-day re-entry.
	if l.State().Streak != 0 {
		t.Errorf("streak = %d, want 0", l.State().Streak)
	}
}

func TestRollDailyStreak_ConsecutiveDays(t *testing.T) {
	l, day := newTestLedger("2026-03-01")
	dates := []string{"2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05",
		"2026-03-06", "2026-03-07", "2026-03-08"}

	for i, d := range dates {
		*day = d
		l.RollDailyStreak()
		if l.State().Streak != i+1 {
			t.Fatalf("day %s: streak = %d, want %d", d, l.State().Streak, i+1)
		}
	}

	// Day 7 unlocks the week streak badge.
	unlocked := l.DrainUnlocks()
	if len(unlocked) != 1 || unlocked[0].ID != BadgeWeekStreak {
		t.Fatalf("unlocks = %v, want [week_streak]", unlocked)
	}

	// Day 8 keeps counting without re-unlocking.
	*day = "2026-03-09"
	l.RollDailyStreak()
	if l.State().Streak != 8 {
		t.Errorf("streak = %d, want 8", l.State().Streak)
	}
	if got := l.DrainUnlocks(); len(got) != 0 {
		t.Errorf("badge re-unlocked: %v", got)
	}
}

func TestRollDailyStreak_GapResets(t *testing.T) {
	l, day := newTestLedger("2026-03-01")
	*day = "2026-03-02"
	l.RollDailyStreak()
	*day = "2026-03-03"
	l.RollDailyStreak()
	if l.State().Streak != 2 {
		t.Fatalf("setup streak = %d", l.State().Streak)
	}

	*day = "2026-03-06" // skipped two days
	l.RollDailyStreak()
	if l.State().Streak != 1 {
		t.Errorf("streak after gap = %d, want 1", l.State().Streak)
	}
}

func TestUnlockBadge_Idempotent(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")

	badge := l.UnlockBadge(BadgeQuizMaster)
	if badge == nil || badge.ID != BadgeQuizMaster {
		t.Fatalf("first unlock returned %v", badge)
	}
	xpAfter := l.State().XP
	if xpAfter != badge.XPReward {
		t.Errorf("XP = %d, want flat reward %d", xpAfter, badge.XPReward)
	}

	if again := l.UnlockBadge(BadgeQuizMaster); again != nil {
		t.Errorf("second unlock returned %v, want nil", again)
	}
	if l.State().XP != xpAfter {
		t.Errorf("second unlock changed XP: %d", l.State().XP)
	}

	if got := l.UnlockBadge("no_such_badge"); got != nil {
		t.Errorf("unknown badge returned %v", got)
	}
}

func TestAdvanceMission_CompletesOnceAndClamps(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	mission, _ := MissionByID("daily_quiz")

	completed := l.AdvanceMission(CategoryQuiz, 1)
	if len(completed) != 0 {
		t.Fatalf("completed early: %v", completed)
	}

	completed = l.AdvanceMission(CategoryQuiz, 1)
	if len(completed) != 1 {
		t.Fatalf("expected completion on reaching target, got %v", completed)
	}
	if completed[0].Result.XPGained != mission.XPReward {
		t.Errorf("reward = %d, want %d", completed[0].Result.XPGained, mission.XPReward)
	}

	xpAfter := l.State().XP
	for i := 0; i < 5; i++ {
		if extra := l.AdvanceMission(CategoryQuiz, 1); len(extra) != 0 {
			t.Fatalf("completed mission advanced again: %v", extra)
		}
	}
	if l.State().XP != xpAfter {
		t.Errorf("extra advances changed XP: %d -> %d", xpAfter, l.State().XP)
	}

	for _, mv := range l.Missions() {
		if mv.ID == "daily_quiz" && (mv.Progress != mission.Target || !mv.Completed) {
			t.Errorf("mission view = %+v", mv)
		}
	}
}

func TestAdvanceMission_LargeAmountClampsToTarget(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	mission, _ := MissionByID("daily_flashcards")

	completed := l.AdvanceMission(CategoryFlashcard, mission.Target*5)
	if len(completed) != 1 {
		t.Fatalf("completions = %v", completed)
	}
	for _, ms := range l.State().Missions {
		if ms.ID == mission.ID && ms.Progress != mission.Target {
			t.Errorf("progress = %d, want clamped to %d", ms.Progress, mission.Target)
		}
	}
}

func TestResetDailyMissions(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	l.AdvanceMission(CategoryQuiz, 2)
	l.AdvanceMission(CategoryFlashcard, 4)

	l.ResetDailyMissions()

	for _, ms := range l.State().Missions {
		if ms.Progress != 0 || ms.Completed {
			t.Errorf("mission %s not reset: %+v", ms.ID, ms)
		}
	}
	if len(l.State().Missions) != len(MissionCatalog) {
		t.Errorf("mission count = %d, want %d", len(l.State().Missions), len(MissionCatalog))
	}
}

func TestEnsureMissionDay_LazyReset(t *testing.T) {
	l, day := newTestLedger("2026-03-01")
	l.AdvanceMission(CategoryDoubt, 1)

	if l.EnsureMissionDay() {
		t.Fatal("reset on the same day")
	}

	*day = "2026-03-02"
	if !l.EnsureMissionDay() {
		t.Fatal("no reset on a new day")
	}
	for _, ms := range l.State().Missions {
		if ms.Progress != 0 || ms.Completed {
			t.Errorf("mission %s carried over: %+v", ms.ID, ms)
		}
	}
	if l.State().LastMissionReset != "2026-03-02" {
		t.Errorf("lastMissionReset = %s", l.State().LastMissionReset)
	}
}

func TestIncrementCounter_ThresholdBadges(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")

	for i := 1; i <= 4; i++ {
		l.IncrementCounter(CounterQuizzesCompleted)
		if got := l.DrainUnlocks(); len(got) != 0 {
			t.Fatalf("badge before threshold at %d: %v", i, got)
		}
	}

	l.IncrementCounter(CounterQuizzesCompleted)
	unlocked := l.DrainUnlocks()
	if len(unlocked) != 1 || unlocked[0].ID != BadgeQuizMaster {
		t.Fatalf("5th increment unlocks = %v, want [quiz_master]", unlocked)
	}

	l.IncrementCounter(CounterQuizzesCompleted)
	if got := l.DrainUnlocks(); len(got) != 0 {
		t.Errorf("6th increment re-unlocked: %v", got)
	}
}

func TestIncrementCounter_FirstOccurrenceBadges(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")

	l.IncrementCounter(CounterStepsSubmitted)
	unlocked := l.DrainUnlocks()
	if len(unlocked) != 1 || unlocked[0].ID != BadgeFirstStep {
		t.Fatalf("unlocks = %v, want [first_step]", unlocked)
	}

	l.IncrementCounter(CounterCorrectSteps)
	unlocked = l.DrainUnlocks()
	if len(unlocked) != 1 || unlocked[0].ID != BadgeCorrectStep {
		t.Fatalf("unlocks = %v, want [correct_step]", unlocked)
	}

	if l.State().Counters[CounterStepsSubmitted] != 1 {
		t.Errorf("counter = %d", l.State().Counters[CounterStepsSubmitted])
	}
}

func TestLevelProgress(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	l.State().XP = 150
	l.State().Level = LevelForXP(150) // level 2: band [100, 400)

	p := l.LevelProgress()
	if p.XPIntoLevel != 50 || p.XPForLevel != 300 {
		t.Fatalf("progress = %+v", p)
	}
	if math.Abs(p.Percent-16.666) > 0.01 {
		t.Errorf("percent = %v", p.Percent)
	}
}

func TestLevelTitle_Bands(t *testing.T) {
	tests := []struct {
		level int
		title string
	}{
		{1, "Novice Learner"},
		{5, "Novice Learner"},
		{6, "Eager Student"},
		{10, "Eager Student"},
		{20, "Dedicated Scholar"},
		{35, "Knowledge Seeker"},
		{50, "Subject Adept"},
		{75, "Learned Sage"},
		{76, "Grand Master"},
		{200, "Grand Master"},
	}
	for _, tc := range tests {
		l, _ := newTestLedger("2026-03-01")
		l.State().Level = tc.level
		if got := l.LevelTitle(); got != tc.title {
			t.Errorf("level %d: title = %q, want %q", tc.level, got, tc.title)
		}
	}
}

func TestBadges_ViewMergesOverlay(t *testing.T) {
	l, _ := newTestLedger("2026-03-01")
	l.UnlockBadge(BadgeStudyPlanner)

	views := l.Badges()
	if len(views) != len(BadgeCatalog) {
		t.Fatalf("view count = %d", len(views))
	}
	for _, v := range views {
		unlockedWanted := v.ID == BadgeStudyPlanner
		if v.Unlocked != unlockedWanted {
			t.Errorf("badge %s unlocked = %v", v.ID, v.Unlocked)
		}
		if unlockedWanted && v.UnlockedAt == nil {
			t.Errorf("badge %s missing unlock time", v.ID)
		}
	}
}
