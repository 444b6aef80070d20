package repository

import (
	"learnquest_backend/internal/gamification"
	"learnquest_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressRepository persists a user's gamification state: profile scalars on
// the users row, badge/mission overlays and counters in child tables. State
// is loaded and saved as one unit; the ledger itself never touches storage.
type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// LoadState assembles the ledger state for a user. Missing overlay rows mean
// zero progress; the mission day comes from the user's last reset date so a
// stale day is detected (and lazily reset) by the ledger, not by SQL.
func (r *ProgressRepository) LoadState(user *model.User) (*gamification.State, error) {
	state := &gamification.State{
		XP:               user.XP,
		Level:            user.Level,
		Streak:           user.Streak,
		LastActiveDate:   user.LastActiveDate,
		LastMissionReset: user.LastMissionReset,
		Badges:           make(map[string]*gamification.BadgeState),
		Counters:         make(map[string]int),
	}
	if state.Level < 1 {
		state.Level = 1
	}

	var badges []model.UserBadge
	if err := r.DB.Where("user_id = ?", user.ID).Find(&badges).Error; err != nil {
		return nil, err
	}
	for _, b := range badges {
		state.Badges[b.BadgeID] = &gamification.BadgeState{
			Unlocked:   true,
			UnlockedAt: b.UnlockedAt,
		}
	}

	var missions []model.UserMission
	if err := r.DB.Where("user_id = ? AND mission_date = ?", user.ID, user.LastMissionReset).
		Find(&missions).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]model.UserMission, len(missions))
	for _, m := range missions {
		byID[m.MissionID] = m
	}
	for _, m := range gamification.MissionCatalog {
		ms := &gamification.MissionState{ID: m.ID}
		if row, ok := byID[m.ID]; ok {
			ms.Progress = row.Progress
			ms.Completed = row.Completed
		}
		state.Missions = append(state.Missions, ms)
	}

	var counters []model.ActivityCounter
	if err := r.DB.Where("user_id = ?", user.ID).Find(&counters).Error; err != nil {
		return nil, err
	}
	for _, c := range counters {
		state.Counters[c.Name] = c.Value
	}

	return state, nil
}

// SaveState writes the whole state back in one transaction. Overlay rows are
// upserted against their unique composite keys, so replays never duplicate.
func (r *ProgressRepository) SaveState(userID uint, state *gamification.State) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"xp":                 state.XP,
			"level":              state.Level,
			"streak":             state.Streak,
			"last_active_date":   state.LastActiveDate,
			"last_mission_reset": state.LastMissionReset,
		}).Error
		if err != nil {
			return err
		}

		for badgeID, bs := range state.Badges {
			if !bs.Unlocked {
				continue
			}
			row := model.UserBadge{
				UserID:     userID,
				BadgeID:    badgeID,
				UnlockedAt: bs.UnlockedAt,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
				DoNothing: true,
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for _, ms := range state.Missions {
			row := model.UserMission{
				UserID:      userID,
				MissionID:   ms.ID,
				MissionDate: state.LastMissionReset,
				Progress:    ms.Progress,
				Completed:   ms.Completed,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "mission_id"}, {Name: "mission_date"}},
				DoUpdates: clause.AssignmentColumns([]string{"progress", "completed"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		for name, value := range state.Counters {
			row := model.ActivityCounter{
				UserID: userID,
				Name:   name,
				Value:  value,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"value"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
