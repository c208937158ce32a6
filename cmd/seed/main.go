// Seeds the bootstrap admin account. Safe to run repeatedly: if the admin
// email already exists nothing is written.
package main

import (
	"log"
	"os"

	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/config"
	"github.com/shaik-naseema17/employee-api/internal/db"
	"github.com/shaik-naseema17/employee-api/internal/models"
	"github.com/shaik-naseema17/employee-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	database, err := db.Open(cfg.DbDsn)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}

	email := getEnv("SEED_ADMIN_EMAIL", "admin@gmail.com")
	password := getEnv("SEED_ADMIN_PASSWORD", "admin")

	var existing models.User
	if err := database.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("admin user already exists, skipping")
		return
	} else if err != gorm.ErrRecordNotFound {
		log.Fatalf("seed error: %v", err)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("seed error: %v", err)
	}

	admin := models.User{
		Name:     "Admin",
		Email:    email,
		Password: passwordHash,
		Role:     "admin",
	}
	if err := database.Create(&admin).Error; err != nil {
		log.Fatalf("seed error: %v", err)
	}

	log.Println("admin user created")
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
