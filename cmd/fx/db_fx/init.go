package db_fx

import (
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"mindcaddy/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB() *gorm.DB {
	db := infra.InitPostgresql()

	if err := infra.SeedPlans(db); err != nil {
		log.Printf("Error seeding plans: %v", err)
	}

	return db
}
