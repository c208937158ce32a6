package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SalaryRecord struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID  uuid.UUID `gorm:"type:char(36);index;not null" json:"employeeId"`
	Employee    *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	BasicSalary float64   `gorm:"type:decimal(12,2);not null" json:"basicSalary"`
	Allowances  float64   `gorm:"type:decimal(12,2)" json:"allowances"`
	Deductions  float64   `gorm:"type:decimal(12,2)" json:"deductions"`
	NetSalary   float64   `gorm:"type:decimal(12,2);not null" json:"netSalary"`
	PayDate     time.Time `gorm:"index;not null" json:"payDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *SalaryRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
