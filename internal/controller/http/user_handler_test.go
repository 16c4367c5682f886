package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/therealrustam/yamdb-final/internal/access"
	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUserUseCase is a mock implementation of UserUseCase
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) List(search string, limit, offset int) ([]*entity.User, int64, error) {
	args := m.Called(search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserUseCase) Create(input usecase.UserInput) (*entity.User, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Update(username string, patch usecase.UserPatch) (*entity.User, error) {
	args := m.Called(username, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserUseCase) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

func (m *MockUserUseCase) UpdateMe(actor *entity.User, patch usecase.UserPatch) (*entity.User, error) {
	args := m.Called(actor, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.UserUseCase = (*MockUserUseCase)(nil)

func asUser(user *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user != nil {
			c.Set("user", user)
		}
		c.Next()
	}
}

func TestListUsers_AdminAllowed(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	admin := &entity.User{ID: "admin-1", Username: "root", Role: entity.RoleAdmin}
	router := setupTestRouter()
	router.GET("/users", asUser(admin), Authorize(access.AdminOnly), handler.List)

	users := []*entity.User{{ID: "user-1", Username: "alice"}}
	mockUseCase.On("List", "", 10, 0).Return(users, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])
	mockUseCase.AssertExpectations(t)
}

func TestListUsers_StaffWithoutAdminRoleAllowed(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	staff := &entity.User{ID: "staff-1", Username: "ops", Role: entity.RoleUser, IsStaff: true}
	router := setupTestRouter()
	router.GET("/users", asUser(staff), Authorize(access.AdminOnly), handler.List)

	mockUseCase.On("List", "", 10, 0).Return([]*entity.User{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListUsers_PlainUserForbidden(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	user := &entity.User{ID: "user-1", Username: "alice", Role: entity.RoleUser}
	router := setupTestRouter()
	router.GET("/users", asUser(user), Authorize(access.AdminOnly), handler.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertNotCalled(t, "List")
}

func TestListUsers_ModeratorForbidden(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	moderator := &entity.User{ID: "mod-1", Username: "mod", Role: entity.RoleModerator}
	router := setupTestRouter()
	router.GET("/users", asUser(moderator), Authorize(access.AdminOnly), handler.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListUsers_AnonymousUnauthorized(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users", asUser(nil), Authorize(access.AdminOnly), handler.List)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsers_Pagination(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	admin := &entity.User{ID: "admin-1", Username: "root", Role: entity.RoleAdmin}
	router := setupTestRouter()
	router.GET("/users", asUser(admin), Authorize(access.AdminOnly), handler.List)

	mockUseCase.On("List", "ali", 25, 50).Return([]*entity.User{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users?search=ali&limit=25&offset=50", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestListUsers_LimitCapped(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	admin := &entity.User{ID: "admin-1", Username: "root", Role: entity.RoleAdmin}
	router := setupTestRouter()
	router.GET("/users", asUser(admin), Authorize(access.AdminOnly), handler.List)

	mockUseCase.On("List", "", 100, 0).Return([]*entity.User{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users?limit=5000", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreateUser_Handler(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/users", handler.Create)

	created := &entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	mockUseCase.On("Create", usecase.UserInput{Username: "alice", Email: "alice@example.com"}).
		Return(created, nil)

	body := `{"username":"alice","email":"alice@example.com"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
	// Internal fields stay out of the payload
	assert.NotContains(t, response, "confirmation_code")
	assert.NotContains(t, response, "id")
}

func TestGetUser_NotFound(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/:username", handler.Get)

	mockUseCase.On("GetByUsername", "ghost").Return(nil, apperr.NotFound("user %q not found", "ghost"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/ghost", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser_Handler(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/users/:username", handler.Delete)

	mockUseCase.On("Delete", "alice").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/users/alice", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestMe_Anonymous(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/users/me", handler.Me)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/me", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe_Authenticated(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	user := &entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	router := setupTestRouter()
	router.GET("/users/me", asUser(user), handler.Me)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/me", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
}

func TestPatchMe_Handler(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase)

	user := &entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Role: entity.RoleUser}
	router := setupTestRouter()
	router.PATCH("/users/me", asUser(user), handler.PatchMe)

	bio := "updated bio"
	updated := &entity.User{ID: "user-1", Username: "alice", Email: "alice@example.com", Bio: bio, Role: entity.RoleUser}
	mockUseCase.On("UpdateMe", user, usecase.UserPatch{Bio: &bio}).Return(updated, nil)

	body := `{"bio":"updated bio"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/users/me", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "updated bio", response["bio"])
	mockUseCase.AssertExpectations(t)
}
