package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/models"
)

type SalaryHandler struct {
	DB *gorm.DB
}

type addSalaryRequest struct {
	EmployeeID  string  `json:"employeeId" binding:"required"`
	BasicSalary float64 `json:"basicSalary" binding:"required"`
	Allowances  float64 `json:"allowances"`
	Deductions  float64 `json:"deductions"`
	PayDate     string  `json:"payDate" binding:"required"`
}

func NewSalaryHandler(db *gorm.DB) *SalaryHandler {
	return &SalaryHandler{DB: db}
}

func (h *SalaryHandler) Add(c *gin.Context) {
	var req addSalaryRequest
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
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while adding salary"})
		return
	}

	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid payDate"})
		return
	}

	record := models.SalaryRecord{
		EmployeeID:  employee.ID,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		NetSalary:   req.BasicSalary + req.Allowances - req.Deductions,
		PayDate:     payDate,
	}

	// The employee row mirrors the latest net salary.
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		return tx.Model(&models.Employee{}).
			Where("id = ?", employee.ID).
			Update("salary", record.NetSalary).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while adding salary"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "salary": record})
}

func (h *SalaryHandler) History(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching salary history"})
		return
	}

	var records []models.SalaryRecord
	if err := h.DB.Where("employee_id = ?", employee.ID).
		Order("pay_date desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching salary history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(records), "salaries": records})
}
