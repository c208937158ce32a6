package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/config"
	"github.com/shaik-naseema17/employee-api/internal/middleware"
	"github.com/shaik-naseema17/employee-api/internal/models"
	"github.com/shaik-naseema17/employee-api/internal/utils"
)

type AuthHandler struct {
	DB  *gorm.DB
	Cfg config.Config
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(db *gorm.DB, cfg config.Config) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid input"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "wrong password"})
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), user.Role, h.Cfg.JwtSecret, h.Cfg.JwtExpiryHours)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user": gin.H{
			"id":   user.ID,
			"name": user.Name,
			"role": user.Role,
		},
	})
}

// Verify echoes the identity resolved by the auth middleware so the client
// can restore a session from a stored token.
func (h *AuthHandler) Verify(c *gin.Context) {
	value, ok := c.Get(middleware.ContextUser)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}
	user := value.(models.User)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":           user.ID,
			"name":         user.Name,
			"email":        user.Email,
			"role":         user.Role,
			"profileImage": user.ProfileImage,
		},
	})
}
