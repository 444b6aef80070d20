package gamification

import (
	"math"
	"time"
)

// Ledger applies the gamification rules to one user's State. It is a pure
// in-memory component: the clock is injected and persistence happens outside.
// A Ledger must not be shared across goroutines; each caller loads its own
// state, mutates it, and saves it.
type Ledger struct {
	state    *State
	now      func() time.Time
	unlocked []Badge
}

// NewLedger wraps an existing state with the given clock. The clock must
// return a stable "today" for the life of a request so two calls within one
// operation never disagree about the calendar date.
func NewLedger(state *State, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{state: state, now: now}
}

// State exposes the wrapped record for persistence.
func (l *Ledger) State() *State {
	return l.state
}

func (l *Ledger) today() string {
	return l.now().Format(DateLayout)
}

// XPResult reports the outcome of a single XP award.
type XPResult struct {
	XPGained  int  `json:"xpGained"`
	LeveledUp bool `json:"leveledUp"`
	NewLevel  int  `json:"newLevel"`
}

// LevelForXP derives the level from cumulative XP: floor(sqrt(xp/100)) + 1.
// Monotonically non-decreasing in xp.
func LevelForXP(xp int) int {
	return int(math.Sqrt(float64(xp)/100)) + 1
}

// AwardXP resolves the base amount for the activity (override > 0 replaces
// it; mission_complete and streak_bonus have no base and require one),
// applies the streak multiplier with the fractional part truncated, and
// recomputes the level. Reaching level 10 attempts the level-ten badge.
func (l *Ledger) AwardXP(activity ActivityType, override int) XPResult {
	base := baseXP[activity]
	if override > 0 {
		base = override
	}

	gained := int(float64(base) * l.StreakMultiplier())

	prev := l.state.Level
	l.state.XP += gained
	l.state.Level = LevelForXP(l.state.XP)

	res := XPResult{
		XPGained:  gained,
		LeveledUp: l.state.Level > prev,
		NewLevel:  l.state.Level,
	}

	if l.state.Level >= 10 {
		l.UnlockBadge(BadgeLevelTen)
	}

	return res
}

// RollDailyStreak advances the consecutive-day streak. Safe to call any
// number of times per day: only the first call on a new date changes the
// streak. A gap of two or more days resets it to 1.
func (l *Ledger) RollDailyStreak() {
	today := l.today()
	yesterday := l.now().AddDate(0, 0, -1).Format(DateLayout)

	switch l.state.LastActiveDate {
	case today:
		// Already rolled today.
	case yesterday:
		l.state.Streak++
	default:
		l.state.Streak = 1
	}
	l.state.LastActiveDate = today

	if l.state.Streak >= 7 {
		l.UnlockBadge(BadgeWeekStreak)
	}
}

// UnlockBadge marks the badge unlocked and credits its XP reward. Badge
// rewards are flat; the streak multiplier does not apply. Unknown or
// already-unlocked badges are a no-op returning nil.
func (l *Ledger) UnlockBadge(id string) *Badge {
	badge, ok := BadgeByID(id)
	if !ok {
		return nil
	}
	if bs := l.state.Badges[id]; bs != nil && bs.Unlocked {
		return nil
	}

	l.state.Badges[id] = &BadgeState{Unlocked: true, UnlockedAt: l.now()}
	l.state.XP += badge.XPReward
	l.state.Level = LevelForXP(l.state.XP)
	l.unlocked = append(l.unlocked, badge)

	return &badge
}

// DrainUnlocks returns the badges unlocked since the last drain and clears
// the buffer. The host uses this to notify the user and persist overlays.
func (l *Ledger) DrainUnlocks() []Badge {
	out := l.unlocked
	l.unlocked = nil
	return out
}

// MissionCompletion pairs a finished mission with the XP it paid out.
type MissionCompletion struct {
	Mission Mission  `json:"mission"`
	Result  XPResult `json:"result"`
}

// AdvanceMission adds amount to every incomplete mission of the category,
// clamped to each target. A mission completing pays its reward exactly once
// via AwardXP with an explicit override.
func (l *Ledger) AdvanceMission(category MissionCategory, amount int) []MissionCompletion {
	if amount <= 0 {
		amount = 1
	}

	var completed []MissionCompletion
	for _, ms := range l.state.Missions {
		m, ok := MissionByID(ms.ID)
		if !ok || m.Category != category || ms.Completed {
			continue
		}

		ms.Progress += amount
		if ms.Progress >= m.Target {
			ms.Progress = m.Target
			ms.Completed = true
			res := l.AwardXP(ActivityMissionComplete, m.XPReward)
			completed = append(completed, MissionCompletion{Mission: m, Result: res})
		}
	}
	return completed
}

// ResetDailyMissions reinstates the catalog's per-day targets with zero
// progress. Intended for day rollover; calling it mid-day discards the
// day's progress.
func (l *Ledger) ResetDailyMissions() {
	l.state.Missions = freshMissions()
	l.state.LastMissionReset = l.today()
}

// EnsureMissionDay lazily resets missions on the first access of a new
// calendar day. Returns true when a reset happened.
func (l *Ledger) EnsureMissionDay() bool {
	if l.state.LastMissionReset == l.today() {
		return false
	}
	l.ResetDailyMissions()
	return true
}

// IncrementCounter bumps the named lifetime counter and unlocks any badge
// whose threshold the new value satisfies.
func (l *Ledger) IncrementCounter(name string) {
	l.state.Counters[name]++
	value := l.state.Counters[name]

	for _, rule := range counterRules {
		if rule.Counter != name {
			continue
		}
		if (rule.Exact && value == rule.Threshold) || (!rule.Exact && value >= rule.Threshold) {
			l.UnlockBadge(rule.BadgeID)
		}
	}
}

// StreakMultiplier is a pure function of the current streak.
func (l *Ledger) StreakMultiplier() float64 {
	for _, tier := range streakTiers {
		if l.state.Streak >= tier.Days {
			return tier.Multiplier
		}
	}
	return 1.00
}

// LevelProgress describes where the user sits inside the current level.
type LevelProgress struct {
	XPIntoLevel int     `json:"xpIntoLevel"`
	XPForLevel  int     `json:"xpForLevel"`
	Percent     float64 `json:"percent"`
}

// LevelProgress derives progress within the current level band. Percent is
// not clamped; display code clamps to [0,100].
func (l *Ledger) LevelProgress() LevelProgress {
	level := l.state.Level
	start := (level - 1) * (level - 1) * 100
	next := level * level * 100

	into := l.state.XP - start
	span := next - start
	return LevelProgress{
		XPIntoLevel: into,
		XPForLevel:  span,
		Percent:     float64(into) / float64(span) * 100,
	}
}

// TitleForLevel maps a level to its honorific band.
func TitleForLevel(level int) string {
	for _, band := range levelTitles {
		if level <= band.MaxLevel {
			return band.Title
		}
	}
	return topLevelTitle
}

// LevelTitle maps the current level to its honorific band.
func (l *Ledger) LevelTitle() string {
	return TitleForLevel(l.state.Level)
}

// BadgeView merges a catalog badge with its per-user unlock state.
type BadgeView struct {
	Badge
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlockedAt,omitempty"`
}

// Badges returns the full catalog overlaid with the user's unlocks.
func (l *Ledger) Badges() []BadgeView {
	views := make([]BadgeView, 0, len(BadgeCatalog))
	for _, b := range BadgeCatalog {
		view := BadgeView{Badge: b}
		if bs := l.state.Badges[b.ID]; bs != nil && bs.Unlocked {
			at := bs.UnlockedAt
			view.Unlocked = true
			view.UnlockedAt = &at
		}
		views = append(views, view)
	}
	return views
}

// MissionView merges a catalog mission with the user's progress for today.
type MissionView struct {
	Mission
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// Missions returns today's missions overlaid with the user's progress.
func (l *Ledger) Missions() []MissionView {
	views := make([]MissionView, 0, len(l.state.Missions))
	for _, ms := range l.state.Missions {
		m, ok := MissionByID(ms.ID)
		if !ok {
			continue
		}
		views = append(views, MissionView{Mission: m, Progress: ms.Progress, Completed: ms.Completed})
	}
	return views
}
