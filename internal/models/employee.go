package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee holds the HR attributes of a hired person. It never exists
// without its User row: both are written in one transaction at creation.
// EmployeeID is the business identifier printed on badges; it is indexed
// for lookups but deliberately not unique.
type Employee struct {
	ID            uuid.UUID   `gorm:"type:char(36);primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:char(36);uniqueIndex;not null" json:"userId"`
	User          User        `gorm:"foreignKey:UserID" json:"user"`
	EmployeeID    string      `gorm:"size:50;index;not null" json:"employeeId"`
	DOB           *time.Time  `json:"dob,omitempty"`
	Gender        string      `gorm:"size:20" json:"gender,omitempty"`
	MaritalStatus string      `gorm:"size:20" json:"maritalStatus,omitempty"`
	Designation   string      `gorm:"size:120" json:"designation,omitempty"`
	DepartmentID  *uuid.UUID  `gorm:"type:char(36);index" json:"departmentId,omitempty"`
	Department    *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Salary        float64     `gorm:"type:decimal(12,2)" json:"salary"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
