package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/middleware"
	"github.com/shaik-naseema17/employee-api/internal/models"
	"github.com/shaik-naseema17/employee-api/internal/utils"
)

type SettingHandler struct {
	DB *gorm.DB
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func NewSettingHandler(db *gorm.DB) *SettingHandler {
	return &SettingHandler{DB: db}
}

func (h *SettingHandler) ChangePassword(c *gin.Context) {
	value, ok := c.Get(middleware.ContextUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}
	user := value.(models.User)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	if !utils.CheckPassword(user.Password, req.OldPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "old password is incorrect"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "password error"})
		return
	}

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("password", newHash).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "server error while changing password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "password changed successfully"})
}
