package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/models"
)

type LeaveHandler struct {
	DB *gorm.DB
}

type addLeaveRequest struct {
	EmployeeID string `json:"employeeId" binding:"required"`
	LeaveType  string `json:"leaveType" binding:"required"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	Reason     string `json:"reason"`
}

type updateLeaveStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

func NewLeaveHandler(db *gorm.DB) *LeaveHandler {
	return &LeaveHandler{DB: db}
}

func (h *LeaveHandler) Add(c *gin.Context) {
	var req addLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	id, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid employee id"})
		return
	}

	employee, err := findEmployeeByAnyID(h.DB, id)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "employee not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while adding leave"})
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid startDate"})
		return
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid endDate"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "endDate before startDate"})
		return
	}

	leave := models.LeaveRequest{
		EmployeeID: employee.ID,
		LeaveType:  strings.TrimSpace(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     models.LeaveStatusPending,
		AppliedAt:  time.Now(),
	}
	if err := h.DB.Create(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while adding leave"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "leave": leave})
}

func (h *LeaveHandler) List(c *gin.Context) {
	var leaves []models.LeaveRequest
	if err := h.DB.Preload("Employee.User").Preload("Employee.Department").
		Order("applied_at desc").Find(&leaves).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching leaves"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(leaves), "leaves": leaves})
}

// ListByEmployee accepts an employee id or a user id, same contract as the
// registry's single read.
func (h *LeaveHandler) ListByEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	employee, err := findEmployeeByAnyID(h.DB, id)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "employee not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching leaves"})
		return
	}

	var leaves []models.LeaveRequest
	if err := h.DB.Where("employee_id = ?", employee.ID).
		Order("applied_at desc").Find(&leaves).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching leaves"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(leaves), "leaves": leaves})
}

func (h *LeaveHandler) Detail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var leave models.LeaveRequest
	if err := h.DB.Preload("Employee.User").Preload("Employee.Department").
		First(&leave, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "leave not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leave": leave})
}

func (h *LeaveHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req updateLeaveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	var leave models.LeaveRequest
	if err := h.DB.First(&leave, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "leave not found"})
		return
	}

	leave.Status = req.Status
	if err := h.DB.Save(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while updating leave"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "leave": leave})
}
