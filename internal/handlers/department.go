package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/models"
)

type DepartmentHandler struct {
	DB *gorm.DB
}

type departmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func NewDepartmentHandler(db *gorm.DB) *DepartmentHandler {
	return &DepartmentHandler{DB: db}
}

func (h *DepartmentHandler) Add(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	department := models.Department{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.DB.Create(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while adding department"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "department": department})
}

func (h *DepartmentHandler) List(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Order("created_at desc").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching departments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "departments": departments})
}

func (h *DepartmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "department not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "department": department})
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "department not found"})
		return
	}

	department.Name = strings.TrimSpace(req.Name)
	department.Description = strings.TrimSpace(req.Description)
	if err := h.DB.Save(&department).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while updating department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "department": department})
}

// Delete detaches employees from the department before removing it so the
// registry never holds a dangling reference.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "department not found"})
		return
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("department_id = ?", id).
			Update("department_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Department{}, "id = ?", id).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while deleting department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "department deleted"})
}
