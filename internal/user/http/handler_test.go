package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/condo-backend/internal/auth"
	"github.com/nekogravitycat/condo-backend/internal/user"
)

const residentID = "3f2504e0-4f89-11d3-9a0c-0305e82c3301"

type fakeUserService struct {
	users    map[string]*user.User
	register user.RegisterRequest
}

func newFakeUserService() *fakeUserService {
	name := "Jane Doe"
	return &fakeUserService{users: map[string]*user.User{
		residentID: {
			ID:           residentID,
			Email:        "jane@example.com",
			PasswordHash: "secret1",
			FullName:     &name,
			Role:         user.RoleResident,
			CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
}

func (f *fakeUserService) Register(_ context.Context, req user.RegisterRequest) (*user.User, error) {
	f.register = req
	for _, u := range f.users {
		if u.Email == req.Email {
			return nil, user.ErrEmailAlreadyUsed
		}
	}
	u := &user.User{ID: "9a1f0c1e-0000-4000-8000-000000000001", Email: req.Email, Role: user.RoleResident}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.PasswordHash == password {
			return u, nil
		}
	}
	return nil, user.ErrInvalidCredentials
}

func (f *fakeUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUserService, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	svc := newFakeUserService()
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc, jwtManager), auth.AuthRequired(jwtManager))
	return r, svc, jwtManager
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterReturnsToken(t *testing.T) {
	r, svc, jwtManager := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email":       "new@example.com",
		"password":    "secret1",
		"fullName":    "New Resident",
		"phoneNumber": "0912345678",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "New Resident", svc.register.FullName)
	assert.Equal(t, "0912345678", svc.register.PhoneNumber)

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new@example.com", resp.User.Email)
	assert.Equal(t, user.RoleResident, resp.User.Role)

	claims, err := jwtManager.ParseAndValidate(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID())
	assert.Equal(t, user.RoleResident, claims.Role)
}

func TestRegisterRejectsInvalidPayload(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for name, body := range map[string]gin.H{
		"bad email":      {"email": "not-an-email", "password": "secret1"},
		"short password": {"email": "a@example.com", "password": "12345"},
		"missing fields": {},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/v1/auth/register", "", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"email": "jane@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"email already used"}`, w.Body.String())
}

func TestLogin(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, residentID, resp.User.ID)

	w = doJSON(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email": "jane@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid email or password"}`, w.Body.String())
}

func TestMe(t *testing.T) {
	r, _, jwtManager := newTestRouter(t)

	token, err := jwtManager.GenerateAccessToken(residentID, "jane@example.com", user.RoleResident)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jane@example.com", resp.User.Email)
	require.NotNil(t, resp.User.FullName)
	assert.Equal(t, "Jane Doe", *resp.User.FullName)

	w = doJSON(r, http.MethodGet, "/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeUnknownUser(t *testing.T) {
	r, _, jwtManager := newTestRouter(t)

	token, err := jwtManager.GenerateAccessToken("7c9e6679-7425-40de-944b-e07fc1f90ae7", "gone@example.com", user.RoleResident)
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
