package infra

import (
	"errors"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mindcaddy/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := migrate(connectionPool); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return connectionPool
}

func migrate(db *gorm.DB) error {
	// pgvector must exist before the techniques table migrates its
	// embedding column.
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&db_models.Account{},
		&db_models.Plan{},
		&db_models.Subscription{},
		&db_models.Transaction{},
		&db_models.Conversation{},
		&db_models.ChatMessage{},
		&db_models.Assessment{},
		&db_models.SkillsCheck{},
		&db_models.ControlCircle{},
		&db_models.Goal{},
		&db_models.Technique{},
		&db_models.Scenario{},
	)
}

// SeedPlans inserts the three pricing rows when missing. Re-running is a
// no-op so deploys can call it unconditionally.
func SeedPlans(db *gorm.DB) error {
	plans := []db_models.Plan{
		{
			Code:       "free",
			Name:       "Free",
			Period:     db_models.PeriodMonth,
			PriceMinor: 0,
			Currency:   "USD",
			Features:   []byte(`{"ai_chat_credits": 1, "assessments_per_month": 3}`),
		},
		{
			Code:       "premium",
			Name:       "Premium",
			Period:     db_models.PeriodMonth,
			PriceMinor: 1499,
			Currency:   "USD",
			Features:   []byte(`{"ai_chat": "unlimited", "assessments": "unlimited", "scenarios": true, "community": true, "goals": true}`),
		},
		{
			Code:       "ultimate",
			Name:       "Ultimate",
			Period:     db_models.PeriodMonth,
			PriceMinor: 4999,
			Currency:   "USD",
			Features:   []byte(`{"ai_chat": "unlimited", "assessments": "unlimited", "scenarios": true, "community": true, "goals": true, "human_coaching": true}`),
		},
	}

	for _, plan := range plans {
		var existing db_models.Plan
		err := db.First(&existing, "code = ?", plan.Code).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
