package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:char(36);index;not null" json:"employeeId"`
	Employee   *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	LeaveType  string    `gorm:"size:50;not null" json:"leaveType"`
	StartDate  time.Time `gorm:"not null" json:"startDate"`
	EndDate    time.Time `gorm:"not null" json:"endDate"`
	Reason     string    `gorm:"size:500" json:"reason,omitempty"`
	Status     string    `gorm:"size:20;index;not null;default:pending" json:"status"`
	AppliedAt  time.Time `json:"appliedAt"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
