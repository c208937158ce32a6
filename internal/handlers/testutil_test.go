package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaik-naseema17/employee-api/internal/config"
	"github.com/shaik-naseema17/employee-api/internal/db"
	"github.com/shaik-naseema17/employee-api/internal/models"
	"github.com/shaik-naseema17/employee-api/internal/routes"
	"github.com/shaik-naseema17/employee-api/internal/utils"
)

const testSecret = "test-secret"

func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB, config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	cfg := config.Config{
		AppEnv:         "test",
		JwtSecret:      testSecret,
		JwtExpiryHours: 1,
		UploadDir:      t.TempDir(),
	}

	router := gin.New()
	routes.Register(router, database, cfg)
	return router, database, cfg
}

func seedUser(t *testing.T, database *gorm.DB, name, email, password, role string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Name: name, Email: email, Password: hash, Role: role}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedEmployee(t *testing.T, database *gorm.DB, name, email, employeeID string, departmentID *uuid.UUID) models.Employee {
	t.Helper()
	user := seedUser(t, database, name, email, "pw123456", "employee")
	employee := models.Employee{
		UserID:       user.ID,
		EmployeeID:   employeeID,
		Designation:  "Engineer",
		DepartmentID: departmentID,
		Salary:       50000,
	}
	if err := database.Create(&employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	employee.User = user
	return employee
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user.ID.String(), user.Role, testSecret, 1)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func adminToken(t *testing.T, database *gorm.DB) string {
	t.Helper()
	admin := seedUser(t, database, "Admin", "admin@test.local", "adminpw123", "admin")
	return tokenFor(t, admin)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

type filePart struct {
	name        string
	contentType string
	data        []byte
}

func doMultipart(t *testing.T, router *gin.Engine, path string, fields map[string]string, file *filePart) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if file != nil {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, file.name))
		header.Set("Content-Type", file.contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(file.data); err != nil {
			t.Fatalf("write file part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(recorder.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return payload
}

func countRows(t *testing.T, database *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := database.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func uploadedFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0
		}
		t.Fatalf("read upload dir: %v", err)
	}
	return len(entries)
}

func validEmployeeForm(email string) map[string]string {
	return map[string]string{
		"name":          "Ann",
		"email":         email,
		"employeeId":    "E1",
		"password":      "pw123",
		"dob":           "1995-04-02",
		"gender":        "female",
		"maritalStatus": "single",
		"designation":   "Engineer",
		"salary":        "60000",
	}
}
