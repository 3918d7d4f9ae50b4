package database

import (
	"log"

	"github.com/JoshuaBalles/rgcs/internal/config"
	"github.com/JoshuaBalles/rgcs/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns the driver's unique-violation into
	// gorm.ErrDuplicatedKey; signup relies on that as the authoritative
	// duplicate-email signal.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("cannot connect to database: %v", err)
	}

	Migrate(DB)
	log.Println("database connected, migration complete")
}

func Migrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}
