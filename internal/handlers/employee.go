package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/apperror"
	"github.com/shaik-naseema17/employee-api/internal/config"
	"github.com/shaik-naseema17/employee-api/internal/models"
	"github.com/shaik-naseema17/employee-api/internal/upload"
	"github.com/shaik-naseema17/employee-api/internal/utils"
)

type EmployeeHandler struct {
	DB  *gorm.DB
	Cfg config.Config
}

// updateEmployeeRequest uses pointer fields so that an absent field and a
// zero value are distinguishable: {"salary": 0} really sets the salary,
// while omitting it leaves the stored value alone. An empty department
// string detaches the employee from its department.
type updateEmployeeRequest struct {
	Name          *string  `json:"name"`
	MaritalStatus *string  `json:"maritalStatus"`
	Designation   *string  `json:"designation"`
	Department    *string  `json:"department"`
	Salary        *float64 `json:"salary"`
}

func NewEmployeeHandler(db *gorm.DB, cfg config.Config) *EmployeeHandler {
	return &EmployeeHandler{DB: db, Cfg: cfg}
}

func normalizeRole(value string) (string, bool) {
	role := strings.ToLower(strings.TrimSpace(value))
	if role == "" {
		return "employee", true
	}
	if role == "employee" || role == "admin" {
		return role, true
	}
	return "", false
}

// findEmployeeByAnyID resolves an id that may be either the employee's own
// id or the linked user's id. Callers routinely hold only the user id, so
// the fallback is part of the contract, not an accident.
func findEmployeeByAnyID(db *gorm.DB, id uuid.UUID) (models.Employee, error) {
	var employee models.Employee
	err := db.Preload("User").Preload("Department").First(&employee, "id = ?", id).Error
	if err == nil {
		return employee, nil
	}
	if err != gorm.ErrRecordNotFound {
		return models.Employee{}, err
	}
	err = db.Preload("User").Preload("Department").First(&employee, "user_id = ?", id).Error
	return employee, err
}

func (h *EmployeeHandler) Add(c *gin.Context) {
	// Upload validation runs first and short-circuits with no side effects.
	imageName, err := upload.SaveImage(c, h.Cfg.UploadDir)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"success": false, "error": err.Error()})
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	email := strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	password := c.PostForm("password")
	employeeID := strings.TrimSpace(c.PostForm("employeeId"))

	if name == "" || email == "" || password == "" || employeeID == "" {
		upload.Remove(h.Cfg.UploadDir, imageName)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields"})
		return
	}

	role, validRole := normalizeRole(c.PostForm("role"))
	if !validRole {
		upload.Remove(h.Cfg.UploadDir, imageName)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid role"})
		return
	}

	var dob *time.Time
	if raw := c.PostForm("dob"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			upload.Remove(h.Cfg.UploadDir, imageName)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid dob"})
			return
		}
		dob = &parsed
	}

	var salary float64
	if raw := c.PostForm("salary"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			upload.Remove(h.Cfg.UploadDir, imageName)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid salary"})
			return
		}
		salary = parsed
	}

	var departmentID *uuid.UUID
	if raw := c.PostForm("department"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			upload.Remove(h.Cfg.UploadDir, imageName)
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid department"})
			return
		}
		departmentID = &parsed
	}

	var existing models.User
	if err := h.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		upload.Remove(h.Cfg.UploadDir, imageName)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "user already registered"})
		return
	} else if err != gorm.ErrRecordNotFound {
		upload.Remove(h.Cfg.UploadDir, imageName)
		h.serverError(c, "server error while adding employee", err)
		return
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		upload.Remove(h.Cfg.UploadDir, imageName)
		h.serverError(c, "server error while adding employee", err)
		return
	}

	profileImage := ""
	if imageName != "" {
		profileImage = "/uploads/" + imageName
	}

	user := models.User{
		Name:         name,
		Email:        email,
		Password:     passwordHash,
		Role:         role,
		ProfileImage: profileImage,
	}

	// One transaction for the pair: an employee row must never exist
	// without its user, and a failed employee insert must not strand a user.
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		employee := models.Employee{
			UserID:        user.ID,
			EmployeeID:    employeeID,
			DOB:           dob,
			Gender:        strings.TrimSpace(c.PostForm("gender")),
			MaritalStatus: strings.TrimSpace(c.PostForm("maritalStatus")),
			Designation:   strings.TrimSpace(c.PostForm("designation")),
			DepartmentID:  departmentID,
			Salary:        salary,
		}
		return tx.Create(&employee).Error
	}); err != nil {
		upload.Remove(h.Cfg.UploadDir, imageName)
		h.serverError(c, "server error while adding employee", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "employee created successfully",
		"employee": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var employees []models.Employee
	if err := h.DB.Preload("User").Preload("Department").Order("created_at desc").Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching employees"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(employees), "employees": employees})
}

func (h *EmployeeHandler) Get(c *gin.Context) {
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
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching employee"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "employee": employee})
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid id"})
		return
	}

	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	var employee models.Employee
	if err := h.DB.First(&employee, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "employee not found"})
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", employee.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
		return
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.MaritalStatus != nil {
		employee.MaritalStatus = strings.TrimSpace(*req.MaritalStatus)
	}
	if req.Designation != nil {
		employee.Designation = strings.TrimSpace(*req.Designation)
	}
	if req.Department != nil {
		raw := strings.TrimSpace(*req.Department)
		if raw == "" {
			employee.DepartmentID = nil
		} else {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid department"})
				return
			}
			employee.DepartmentID = &parsed
		}
	}
	if req.Salary != nil {
		employee.Salary = *req.Salary
	}

	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Save(&employee).Error
	}); err != nil {
		h.serverError(c, "server error while updating employee", err)
		return
	}

	var updated models.Employee
	if err := h.DB.Preload("User").Preload("Department").First(&updated, "id = ?", employee.ID).Error; err != nil {
		h.serverError(c, "server error while updating employee", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "employee updated successfully",
		"employee": updated,
	})
}

func (h *EmployeeHandler) ListByDepartment(c *gin.Context) {
	departmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid department id"})
		return
	}

	var employees []models.Employee
	if err := h.DB.Preload("User").Preload("Department").
		Where("department_id = ?", departmentID).
		Order("created_at desc").
		Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while fetching employees by department"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(employees), "employees": employees})
}

// serverError hides the failure detail in production.
func (h *EmployeeHandler) serverError(c *gin.Context, message string, err error) {
	payload := gin.H{"success": false, "error": message}
	if !h.Cfg.Production() && err != nil {
		payload["detail"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, payload)
}
