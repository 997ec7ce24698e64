package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yigit/hostelcare/internal/app/models/dto"
	"github.com/yigit/hostelcare/internal/pkg/apperrors"
	"github.com/yigit/hostelcare/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidation()
}

var quiet = zerolog.New(io.Discard)

func testJWT() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "test"})
}

func token(t *testing.T, svc *auth.JWTService, subject, role string) string {
	t.Helper()
	tok, _, err := svc.GenerateToken(auth.Principal{Subject: subject, Username: subject, Role: role})
	require.NoError(t, err)
	return "Bearer " + tok
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func protectedRouter(svc *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(svc)
	r := gin.New()
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/student/:id/room", m.JWTAuth(), m.StudentSelfOrAdmin("id"), ok)
	r.GET("/admin/stats", m.JWTAuth(), m.RoleRequired(auth.RoleAdmin), ok)
	return r
}

func TestJWTAuthAndAuthorization(t *testing.T) {
	svc := testJWT()
	r := protectedRouter(svc)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"no header", "/student/S1/room", "", http.StatusUnauthorized},
		{"garbage token", "/student/S1/room", "Bearer abc", http.StatusUnauthorized},
		{"own record", "/student/S1/room", token(t, svc, "S1", auth.RoleStudent), http.StatusOK},
		{"other student", "/student/S2/room", token(t, svc, "S1", auth.RoleStudent), http.StatusForbidden},
		{"admin reads student", "/student/S2/room", token(t, svc, "admin", auth.RoleAdmin), http.StatusOK},
		{"student on admin route", "/admin/stats", token(t, svc, "S1", auth.RoleStudent), http.StatusForbidden},
		{"admin route", "/admin/stats", token(t, svc, "admin", auth.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestHandleAPIErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
		msg    string
	}{
		{apperrors.NewValidationError("bad input"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "bad input"},
		{apperrors.ErrRoomNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "room not found"},
		{fmt.Errorf("wrapped: %w", apperrors.ErrRoomFull), http.StatusConflict, dto.ErrorCodeConflict, "room has no available capacity"},
		{apperrors.ErrStudentAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "student with this ID or email already exists"},
		{apperrors.ErrSwapStale, http.StatusConflict, dto.ErrorCodeInvalidState, "allocations changed since the swap was requested"},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden, "nope"},
		{errors.New("pool exhausted"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Code)
			assert.Equal(t, tt.msg, resp.Error)
		})
	}
}

type bindTarget struct {
	StudentID string `json:"student_id" binding:"required"`
	RoomID    int64  `json:"room_id" binding:"required,min=1"`
}

func TestBindJSONReportsJSONFieldNames(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var body bindTarget
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"room_id":0}`)))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"field":"student_id"`)
	assert.Contains(t, w.Body.String(), `"code":"VAL_001"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{not json`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"student_id":"S1","room_id":3}`)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type mockLimiter struct {
	mock.Mock
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func TestLoginThrottle(t *testing.T) {
	limiter := new(mockLimiter)
	limiter.On("Allow", mock.Anything, "login:/login:192.0.2.1").Return(true, nil).Once()
	limiter.On("Allow", mock.Anything, "login:/login:192.0.2.1").Return(false, nil).Once()
	limiter.On("Allow", mock.Anything, "login:/login:192.0.2.1").Return(false, errors.New("redis down")).Once()

	r := gin.New()
	r.POST("/login", LoginThrottle(limiter, quiet), func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "192.0.2.1:5000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, statuses)
	limiter.AssertExpectations(t)
}

func TestLoginThrottleDisabled(t *testing.T) {
	r := gin.New()
	r.POST("/login", LoginThrottle(nil, quiet), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(&buf)))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, id)
	assert.Contains(t, buf.String(), id)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}
