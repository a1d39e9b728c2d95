package database

import (
	"os"

	"resolux-app/internal/domain/basket"
	"resolux-app/internal/domain/billing"
	"resolux-app/internal/domain/forum"
	"resolux-app/internal/domain/plans"
	"resolux-app/internal/domain/subscriptions"
	"resolux-app/internal/domain/users"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal().Msg("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	DB = db

	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal().Err(err).Msg("Failed to enable pgcrypto extension")
	}

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},
		&users.VerificationToken{},

		// commerce
		&plans.Plan{},
		&basket.BasketItem{},
		&subscriptions.Subscription{},
		&billing.Subscriber{},

		// forum
		&forum.Category{},
		&forum.Thread{},
		&forum.Post{},
	); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate error")
	}

	if err := plans.SeedDefault(DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed plan catalog")
	}

	log.Info().Msg("Connected and migrated successfully")
}
