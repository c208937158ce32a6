package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/config"
	"github.com/shaik-naseema17/employee-api/internal/handlers"
	"github.com/shaik-naseema17/employee-api/internal/middleware"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Uploaded profile images are public static files.
	router.Static("/uploads", cfg.UploadDir)

	authHandler := handlers.NewAuthHandler(db, cfg)
	employeeHandler := handlers.NewEmployeeHandler(db, cfg)
	departmentHandler := handlers.NewDepartmentHandler(db)
	leaveHandler := handlers.NewLeaveHandler(db)
	salaryHandler := handlers.NewSalaryHandler(db)
	settingHandler := handlers.NewSettingHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/employee/add", employeeHandler.Add)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(db, cfg.JwtSecret))
	{
		protected.GET("/auth/verify", authHandler.Verify)

		protected.GET("/employee/", employeeHandler.List)
		protected.GET("/employee/:id", employeeHandler.Get)
		protected.PUT("/employee/:id", employeeHandler.Update)
		protected.GET("/employee/department/:id", employeeHandler.ListByDepartment)

		protected.POST("/department/add", departmentHandler.Add)
		protected.GET("/department/", departmentHandler.List)
		protected.GET("/department/:id", departmentHandler.Get)
		protected.PUT("/department/:id", departmentHandler.Update)
		protected.DELETE("/department/:id", departmentHandler.Delete)

		protected.POST("/leave/add", leaveHandler.Add)
		protected.GET("/leave/:id", leaveHandler.ListByEmployee)
		protected.GET("/leave/detail/:id", leaveHandler.Detail)
		protected.GET("/leave/", middleware.RequireRole("admin"), leaveHandler.List)
		protected.PUT("/leave/:id", middleware.RequireRole("admin"), leaveHandler.UpdateStatus)

		protected.POST("/salary/add", middleware.RequireRole("admin"), salaryHandler.Add)
		protected.GET("/salary/:id", salaryHandler.History)

		protected.PUT("/setting/change-password", settingHandler.ChangePassword)

		protected.GET("/dashboard/summary", middleware.RequireRole("admin"), dashboardHandler.Summary)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
