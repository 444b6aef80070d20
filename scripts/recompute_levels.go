// Recompute every user's level from their stored XP.
//
// Levels are derived and normally kept in step by the progress service. Run
// this after changing the level curve or importing users from another system.
//
// Usage: go run scripts/recompute_levels.go

package main

import (
	"learnquest_backend/internal/config"
	"learnquest_backend/internal/gamification"
	"learnquest_backend/internal/model"
	"learnquest_backend/pkg/database"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("failed to parse config file: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	var users []model.User
	if err := db.Select("id", "xp", "level").Find(&users).Error; err != nil {
		log.Fatalf("failed to load users: %v", err)
	}

	fixed := 0
	for _, u := range users {
		want := gamification.LevelForXP(u.XP)
		if want == u.Level {
			continue
		}
		if err := db.Model(&model.User{}).Where("id = ?", u.ID).
			Update("level", want).Error; err != nil {
			log.Printf("user %d: update failed: %v", u.ID, err)
			continue
		}
		log.Printf("user %d: level %d -> %d (xp=%d)", u.ID, u.Level, want, u.XP)
		fixed++
	}

	log.Printf("done: %d of %d users updated", fixed, len(users))
}
