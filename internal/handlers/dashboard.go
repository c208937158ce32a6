package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/models"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	var employeeCount int64
	_ = h.DB.Model(&models.Employee{}).Count(&employeeCount).Error

	var departmentCount int64
	_ = h.DB.Model(&models.Department{}).Count(&departmentCount).Error

	var totalSalary float64
	_ = h.DB.Model(&models.Employee{}).Select("COALESCE(SUM(salary),0)").Scan(&totalSalary).Error

	var appliedFor int64
	_ = h.DB.Model(&models.LeaveRequest{}).Distinct("employee_id").Count(&appliedFor).Error

	statusCounts := map[string]int64{}
	for _, status := range []string{models.LeaveStatusApproved, models.LeaveStatusPending, models.LeaveStatusRejected} {
		var n int64
		_ = h.DB.Model(&models.LeaveRequest{}).Where("status = ?", status).Count(&n).Error
		statusCounts[status] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"totalEmployees":   employeeCount,
		"totalDepartments": departmentCount,
		"totalSalary":      totalSalary,
		"leaveAppliedFor":  appliedFor,
		"leaveStatus": gin.H{
			"approved": statusCounts[models.LeaveStatusApproved],
			"pending":  statusCounts[models.LeaveStatusPending],
			"rejected": statusCounts[models.LeaveStatusRejected],
		},
	})
}
