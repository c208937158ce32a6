package db

import (
	"github.com/shaik-naseema17/employee-api/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Open(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate is split out so tests can run the same schema on sqlite.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Department{},
		&models.Employee{},
		&models.LeaveRequest{},
		&models.SalaryRecord{},
	)
}
