package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/models"
)

func testAdmin(t *testing.T, password string) *models.Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return &models.Admin{
		ID:       1,
		Email:    "admin@escotech.rw",
		Password: hash,
		Name:     "ESCOtech Admin",
	}
}

func newAuthHandler(repo *mockAdminRepo) *AuthHandler {
	return NewAuthHandler(repo, auth.NewService("test-secret", repo), zap.NewNop())
}

func TestAuthHandler_Login_Success(t *testing.T) {
	repo := &mockAdminRepo{admin: testAdmin(t, "admin123")}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@escotech.rw",
		"password": "admin123",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	env := decodeEnvelope(t, rec)
	var data LoginResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.ID != 1 || data.Email != "admin@escotech.rw" {
		t.Errorf("unexpected login data %+v", data)
	}
	if data.Token == "" {
		t.Error("expected a signed token in the login response")
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	repo := &mockAdminRepo{admin: testAdmin(t, "admin123")}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@escotech.rw",
		"password": "wrong",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Invalid email or password" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHandler_Login_UnknownEmailSameMessage(t *testing.T) {
	h := newAuthHandler(&mockAdminRepo{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ghost@escotech.rw",
		"password": "whatever",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Invalid email or password" {
		t.Errorf("expected identical message for unknown email, got %q", env.Message)
	}
}

func TestAuthHandler_Login_ValidationErrors(t *testing.T) {
	h := newAuthHandler(&mockAdminRepo{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	assertErrorFields(t, decodeEnvelope(t, rec), "email", "password")
}

func TestAuthHandler_Register_Success(t *testing.T) {
	repo := &mockAdminRepo{}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Second Admin",
		"email":    "second@escotech.rw",
		"password": "longenough",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if repo.created == nil {
		t.Fatal("expected admin to be created")
	}
	if repo.created.Password == "longenough" {
		t.Error("expected password to be stored hashed")
	}
	if !auth.CheckPassword(repo.created.Password, "longenough") {
		t.Error("expected stored hash to verify against the password")
	}

	env := decodeEnvelope(t, rec)
	if string(env.Data) == "" {
		t.Fatal("expected data in response")
	}
	var data RegisterResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	if data.Email != "second@escotech.rw" {
		t.Errorf("unexpected register data %+v", data)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	repo := &mockAdminRepo{err: apperrors.ErrEmailTaken}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Clone",
		"email":    "admin@escotech.rw",
		"password": "longenough",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Admin with this email already exists" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := newAuthHandler(&mockAdminRepo{})

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "Second Admin",
		"email":    "second@escotech.rw",
		"password": "short",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
	}
	assertErrorFields(t, decodeEnvelope(t, rec), "password")
}

func TestAuthHandler_Me(t *testing.T) {
	admin := testAdmin(t, "admin123")
	h := newAuthHandler(&mockAdminRepo{admin: admin})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(auth.WithAdmin(req.Context(), admin))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	env := decodeEnvelope(t, rec)
	var data map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}
	for _, key := range []string{"id", "name", "email"} {
		if _, ok := data[key]; !ok {
			t.Errorf("expected %q in the profile payload", key)
		}
	}
	for _, key := range []string{"password", "createdAt", "updatedAt"} {
		if _, ok := data[key]; ok {
			t.Errorf("expected %q to be excluded from the profile payload", key)
		}
	}
}

func TestAuthHandler_Login_PasswordWhitespaceSignificant(t *testing.T) {
	repo := &mockAdminRepo{admin: testAdmin(t, " admin123 ")}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@escotech.rw",
		"password": " admin123 ",
	})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	req = jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "admin@escotech.rw",
		"password": "admin123",
	})
	rec = httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d: %s", http.StatusUnauthorized, rec.Code, rec.Body.String())
	}
}

func TestAuthHandler_Register_PasswordWhitespacePreserved(t *testing.T) {
	repo := &mockAdminRepo{}
	h := newAuthHandler(repo)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name":     "New Admin",
		"email":    "new@escotech.rw",
		"password": " secret123 ",
	})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if repo.created == nil {
		t.Fatal("expected an admin to be created")
	}
	if !auth.CheckPassword(repo.created.Password, " secret123 ") {
		t.Error("expected the stored hash to match the untrimmed password")
	}
}
