package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/therealrustam/yamdb-final/internal/apperr"
	"github.com/therealrustam/yamdb-final/internal/entity"
	"github.com/therealrustam/yamdb-final/internal/usecase"
	"github.com/therealrustam/yamdb-final/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockAuthUseCase is a mock implementation of AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) SignUp(ctx context.Context, username, email string) (*entity.User, error) {
	args := m.Called(ctx, username, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) IssueToken(username, confirmationCode string) (*token.Pair, error) {
	args := m.Called(username, confirmationCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Pair), args.Error(1)
}

func (m *MockAuthUseCase) Refresh(refreshToken string) (*token.Pair, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Pair), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestSignUp_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/signup", handler.SignUp)

	user := &entity.User{Username: "alice", Email: "alice@example.com"}
	mockUseCase.On("SignUp", mock.Anything, "alice", "alice@example.com").Return(user, nil)

	body := `{"username":"alice","email":"alice@example.com"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "alice", response["username"])
	assert.Equal(t, "alice@example.com", response["email"])
	mockUseCase.AssertExpectations(t)
}

func TestSignUp_MissingEmail(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/signup", handler.SignUp)

	body := `{"username":"alice"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "SignUp")
}

func TestSignUp_ValidationFields(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/signup", handler.SignUp)

	mockUseCase.On("SignUp", mock.Anything, "me", "me@example.com").
		Return(nil, apperr.ValidationField("username", "this username is reserved"))

	body := `{"username":"me","email":"me@example.com"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "this username is reserved", response["username"])
}

func TestSignUp_DeliveryFailure(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/signup", handler.SignUp)

	mockUseCase.On("SignUp", mock.Anything, "alice", "alice@example.com").
		Return(nil, apperr.Delivery("failed to deliver the confirmation code", nil))

	body := `{"username":"alice","email":"alice@example.com"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/signup", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestToken_Success(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/token", handler.Token)

	pair := &token.Pair{Access: "access-token", Refresh: "refresh-token"}
	mockUseCase.On("IssueToken", "alice", "code-123").Return(pair, nil)

	body := `{"username":"alice","confirmation_code":"code-123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "access-token", response["access"])
	assert.Equal(t, "refresh-token", response["refresh"])
}

func TestToken_UnknownUser(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/token", handler.Token)

	mockUseCase.On("IssueToken", "ghost", "code-123").
		Return(nil, apperr.NotFound("user %q not found", "ghost"))

	body := `{"username":"ghost","confirmation_code":"code-123"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToken_WrongCode(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/token", handler.Token)

	mockUseCase.On("IssueToken", "alice", "wrong").
		Return(nil, apperr.ValidationField("confirmation_code", "invalid confirmation code"))

	body := `{"username":"alice","confirmation_code":"wrong"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/token", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefresh_InvalidToken(t *testing.T) {
	mockUseCase := new(MockAuthUseCase)
	handler := NewAuthHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/auth/token/refresh", handler.Refresh)

	mockUseCase.On("Refresh", "stale").Return(nil, apperr.Unauthorized("invalid refresh token"))

	body := `{"refresh":"stale"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/token/refresh", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
