package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/shaik-naseema17/employee-api/internal/models"
)

func TestAddEmployee(t *testing.T) {
	router, database, _ := newTestEnv(t)

	recorder := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	payload := decodeBody(t, recorder)
	if payload["success"] != true {
		t.Fatalf("expected success envelope, got %v", payload)
	}
	view, ok := payload["employee"].(map[string]any)
	if !ok {
		t.Fatalf("missing employee view in %v", payload)
	}
	if view["email"] != "ann@x.com" {
		t.Errorf("employee email = %v, want ann@x.com", view["email"])
	}
	if _, leaked := view["password"]; leaked {
		t.Error("redacted view must not contain a password field")
	}

	if got := countRows(t, database, &models.User{}); got != 1 {
		t.Errorf("user rows = %d, want 1", got)
	}
	if got := countRows(t, database, &models.Employee{}); got != 1 {
		t.Errorf("employee rows = %d, want 1", got)
	}

	var employee models.Employee
	if err := database.First(&employee).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}
	if employee.EmployeeID != "E1" {
		t.Errorf("employeeId = %q, want E1", employee.EmployeeID)
	}
	if employee.Salary != 60000 {
		t.Errorf("salary = %v, want 60000", employee.Salary)
	}
}

func TestAddEmployeeDuplicateEmail(t *testing.T) {
	router, database, _ := newTestEnv(t)

	first := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first create failed: %d", first.Code)
	}

	form := validEmployeeForm("ann@x.com")
	form["employeeId"] = "E2"
	second := doMultipart(t, router, "/api/employee/add", form, nil)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, second.Code)
	}
	payload := decodeBody(t, second)
	if payload["error"] != "user already registered" {
		t.Errorf("error = %v, want \"user already registered\"", payload["error"])
	}

	if got := countRows(t, database, &models.User{}); got != 1 {
		t.Errorf("user rows = %d, want 1", got)
	}
	if got := countRows(t, database, &models.Employee{}); got != 1 {
		t.Errorf("employee rows = %d, want 1", got)
	}
}

func TestAddEmployeeMissingRequiredFields(t *testing.T) {
	required := []string{"name", "email", "password", "employeeId"}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			router, database, _ := newTestEnv(t)

			form := validEmployeeForm("ann@x.com")
			delete(form, field)
			recorder := doMultipart(t, router, "/api/employee/add", form, nil)
			if recorder.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
			}

			if got := countRows(t, database, &models.User{}); got != 0 {
				t.Errorf("user rows = %d, want 0", got)
			}
			if got := countRows(t, database, &models.Employee{}); got != 0 {
				t.Errorf("employee rows = %d, want 0", got)
			}
		})
	}
}

func TestAddEmployeeWithImage(t *testing.T) {
	router, database, cfg := newTestEnv(t)

	image := &filePart{name: "avatar.png", contentType: "image/png", data: []byte("png-bytes")}
	recorder := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), image)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	var user models.User
	if err := database.First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.ProfileImage == "" {
		t.Error("profile image path not stored")
	}
	if got := uploadedFiles(t, cfg.UploadDir); got != 1 {
		t.Errorf("stored uploads = %d, want 1", got)
	}
}

func TestAddEmployeeRejectsNonImageUpload(t *testing.T) {
	router, database, cfg := newTestEnv(t)

	file := &filePart{name: "notes.txt", contentType: "text/plain", data: []byte("not an image")}
	recorder := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), file)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	if got := countRows(t, database, &models.User{}); got != 0 {
		t.Errorf("user rows = %d, want 0", got)
	}
	if got := uploadedFiles(t, cfg.UploadDir); got != 0 {
		t.Errorf("stored uploads = %d, want 0", got)
	}
}

func TestAddEmployeeRejectsOversizeImage(t *testing.T) {
	router, database, cfg := newTestEnv(t)

	file := &filePart{name: "huge.png", contentType: "image/png", data: make([]byte, 5<<20+1)}
	recorder := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), file)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	if got := countRows(t, database, &models.User{}); got != 0 {
		t.Errorf("user rows = %d, want 0", got)
	}
	if got := uploadedFiles(t, cfg.UploadDir); got != 0 {
		t.Errorf("stored uploads = %d, want 0", got)
	}
}

// Upload cleanup also applies when a later business check rejects the
// request: a stored image must not outlive a failed registration.
func TestAddEmployeeCleansUpImageOnValidationFailure(t *testing.T) {
	router, _, cfg := newTestEnv(t)

	form := validEmployeeForm("ann@x.com")
	delete(form, "password")
	image := &filePart{name: "avatar.png", contentType: "image/png", data: []byte("png-bytes")}
	recorder := doMultipart(t, router, "/api/employee/add", form, image)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	if got := uploadedFiles(t, cfg.UploadDir); got != 0 {
		t.Errorf("stored uploads = %d, want 0", got)
	}
}

func TestGetEmployeeByEitherID(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	created := doMultipart(t, router, "/api/employee/add", validEmployeeForm("ann@x.com"), nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", created.Code)
	}
	view := decodeBody(t, created)["employee"].(map[string]any)
	userID := view["id"].(string)

	var employee models.Employee
	if err := database.First(&employee).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}

	for name, id := range map[string]string{"userID": userID, "employeeRowID": employee.ID.String()} {
		recorder := doJSON(t, router, http.MethodGet, "/api/employee/"+id, nil, token)
		if recorder.Code != http.StatusOK {
			t.Fatalf("%s lookup: expected status %d, got %d", name, http.StatusOK, recorder.Code)
		}
		payload := decodeBody(t, recorder)
		record := payload["employee"].(map[string]any)
		user := record["user"].(map[string]any)
		if user["email"] != "ann@x.com" {
			t.Errorf("%s lookup: email = %v, want ann@x.com", name, user["email"])
		}
		if _, leaked := user["password"]; leaked {
			t.Errorf("%s lookup: password field leaked", name)
		}
	}
}

func TestGetEmployeeNotFound(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	recorder := doJSON(t, router, http.MethodGet, "/api/employee/"+uuid.NewString(), nil, token)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestListEmployees(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	seedEmployee(t, database, "Ann", "ann@x.com", "E1", nil)
	seedEmployee(t, database, "Bob", "bob@x.com", "E2", nil)

	recorder := doJSON(t, router, http.MethodGet, "/api/employee/", nil, token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	payload := decodeBody(t, recorder)
	if payload["count"] != float64(2) {
		t.Errorf("count = %v, want 2", payload["count"])
	}
}

func TestListEmployeesByDepartment(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	engineering := models.Department{Name: "Engineering"}
	if err := database.Create(&engineering).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}
	sales := models.Department{Name: "Sales"}
	if err := database.Create(&sales).Error; err != nil {
		t.Fatalf("create department: %v", err)
	}

	seedEmployee(t, database, "Ann", "ann@x.com", "E1", &engineering.ID)
	seedEmployee(t, database, "Bob", "bob@x.com", "E2", &engineering.ID)
	seedEmployee(t, database, "Cid", "cid@x.com", "E3", &sales.ID)

	recorder := doJSON(t, router, http.MethodGet, "/api/employee/department/"+engineering.ID.String(), nil, token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}
	payload := decodeBody(t, recorder)
	if payload["count"] != float64(2) {
		t.Errorf("count = %v, want 2", payload["count"])
	}
	for _, raw := range payload["employees"].([]any) {
		record := raw.(map[string]any)
		if record["departmentId"] != engineering.ID.String() {
			t.Errorf("employee %v in wrong department %v", record["employeeId"], record["departmentId"])
		}
	}
}

func TestUpdateEmployeeSalaryZero(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	employee := seedEmployee(t, database, "Ann", "ann@x.com", "E1", nil)

	recorder := doJSON(t, router, http.MethodPut, "/api/employee/"+employee.ID.String(), map[string]any{"salary": 0}, token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, recorder.Code, recorder.Body.String())
	}

	var updated models.Employee
	if err := database.First(&updated, "id = ?", employee.ID).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}
	if updated.Salary != 0 {
		t.Errorf("salary = %v, want 0 (zero must be a real update, not an omission)", updated.Salary)
	}
	if updated.Designation != "Engineer" {
		t.Errorf("designation changed to %q, want Engineer", updated.Designation)
	}

	var user models.User
	if err := database.First(&user, "id = ?", employee.UserID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Name != "Ann" {
		t.Errorf("user name changed to %q, want Ann", user.Name)
	}
}

func TestUpdateEmployeeEmptyBodyIsNoOp(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	employee := seedEmployee(t, database, "Ann", "ann@x.com", "E1", nil)

	recorder := doJSON(t, router, http.MethodPut, "/api/employee/"+employee.ID.String(), map[string]any{}, token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var updated models.Employee
	if err := database.First(&updated, "id = ?", employee.ID).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}
	if updated.Salary != 50000 || updated.Designation != "Engineer" || updated.MaritalStatus != "" {
		t.Errorf("empty update changed fields: %+v", updated)
	}
}

func TestUpdateEmployeeName(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	employee := seedEmployee(t, database, "Ann", "ann@x.com", "E1", nil)

	recorder := doJSON(t, router, http.MethodPut, "/api/employee/"+employee.ID.String(), map[string]any{"name": "Annabel"}, token)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, recorder.Code)
	}

	var user models.User
	if err := database.First(&user, "id = ?", employee.UserID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Name != "Annabel" {
		t.Errorf("user name = %q, want Annabel", user.Name)
	}

	var updated models.Employee
	if err := database.First(&updated, "id = ?", employee.ID).Error; err != nil {
		t.Fatalf("load employee: %v", err)
	}
	if updated.Salary != 50000 {
		t.Errorf("salary changed to %v, want 50000", updated.Salary)
	}
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	router, database, _ := newTestEnv(t)
	token := adminToken(t, database)

	recorder := doJSON(t, router, http.MethodPut, "/api/employee/"+uuid.NewString(), map[string]any{"name": "Nobody"}, token)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}
}
