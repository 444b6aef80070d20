package database

import (
	"fmt"
	"learnquest_backend/internal/config"
	"learnquest_backend/internal/model"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// migratedModels is every table the app owns, in dependency order.
var migratedModels = []interface{}{
	&model.User{},
	&model.UserBadge{},
	&model.UserMission{},
	&model.ActivityCounter{},
	&model.Quiz{},
	&model.QuizResult{},
	&model.Deck{},
	&model.Flashcard{},
	&model.DoubtSession{},
	&model.DoubtMessage{},
	&model.SolutionStep{},
	&model.StudyPlan{},
}

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := db.AutoMigrate(migratedModels...); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

// ForceMigrate drops every owned table and recreates it. Destructive; only
// reachable through the -force-migrate flag.
func ForceMigrate(db *gorm.DB) error {
	for i := len(migratedModels) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(migratedModels[i]); err != nil {
			return err
		}
	}
	return db.AutoMigrate(migratedModels...)
}
