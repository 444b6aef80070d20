package gamification

import "time"

// DateLayout is the calendar-date format used for streak and mission
// bookkeeping. Streak logic is calendar-sensitive, never wall-clock.
const DateLayout = "2006-01-02"

// BadgeState is the per-user overlay for one catalog badge. A badge goes
// locked -> unlocked at most once per account; it is never cleared.
type BadgeState struct {
	Unlocked   bool      `json:"unlocked"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

// MissionState is the per-user overlay for one daily mission. Progress is
// monotonically non-decreasing within a day and clamped to the target.
type MissionState struct {
	ID        string `json:"id"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// State holds a single user's complete gamification record. It is mutated
// only through Ledger operations and persisted as one unit.
type State struct {
	XP               int                    `json:"xp"`
	Level            int                    `json:"level"`
	Streak           int                    `json:"streak"`
	LastActiveDate   string                 `json:"lastActiveDate"`
	LastMissionReset string                 `json:"lastMissionReset"`
	Badges           map[string]*BadgeState `json:"badges"`
	Missions         []*MissionState        `json:"missions"`
	Counters         map[string]int         `json:"counters"`
}

// NewState returns the default record for a fresh account.
func NewState(today string) *State {
	return &State{
		XP:               0,
		Level:            1,
		Streak:           0,
		LastActiveDate:   today,
		LastMissionReset: today,
		Badges:           make(map[string]*BadgeState),
		Missions:         freshMissions(),
		Counters:         make(map[string]int),
	}
}

func freshMissions() []*MissionState {
	missions := make([]*MissionState, 0, len(MissionCatalog))
	for _, m := range MissionCatalog {
		missions = append(missions, &MissionState{ID: m.ID})
	}
	return missions
}
