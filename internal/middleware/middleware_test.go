package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coupon-manager/internal/auth"
	"coupon-manager/internal/model"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "Preflight request",
			method:         http.MethodOptions,
			expectedStatus: http.StatusNoContent,
			expectHandler:  false,
		},
		{
			name:           "GET request",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "PUT request",
			method:         http.MethodPut,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			handler := CORS(testHandler)

			req := httptest.NewRequest(tt.method, "/api/coupons", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
		})
	}
}

func TestJWTAuth(t *testing.T) {
	logger := zerolog.Nop()
	tokens := auth.NewTokenManager("test-secret-0123456789", time.Hour)
	userID := uuid.New()

	valid, _, err := tokens.Issue(userID)
	require.NoError(t, err)

	foreign, _, err := auth.NewTokenManager("some-other-secret-xyz", time.Hour).Issue(userID)
	require.NoError(t, err)

	tests := []struct {
		name           string
		path           string
		authorization  string
		expectedStatus int
		expectHandler  bool
		expectUser     bool
	}{
		{
			name:           "Valid token",
			path:           "/api/coupons",
			authorization:  "Bearer " + valid,
			expectedStatus: http.StatusOK,
			expectHandler:  true,
			expectUser:     true,
		},
		{
			name:           "Token from another issuer key",
			path:           "/api/coupons",
			authorization:  "Bearer " + foreign,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong scheme",
			path:           "/api/coupons",
			authorization:  "Basic " + valid,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Empty bearer",
			path:           "/api/coupons",
			authorization:  "Bearer   ",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing header",
			path:           "/api/auth/me",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Health check bypasses auth",
			path:           "/health",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Login bypasses auth",
			path:           "/api/auth/login",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
		{
			name:           "Register bypasses auth",
			path:           "/api/auth/register",
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			var gotUser uuid.UUID
			var hasUser bool
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				gotUser, hasUser = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			handler := chimw.RequestID(JWTAuth(tokens, logger)(testHandler))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectHandler, handlerCalled)
			assert.Equal(t, tt.expectUser, hasUser)
			if tt.expectUser {
				assert.Equal(t, userID, gotUser)
			}

			if tt.expectedStatus == http.StatusUnauthorized {
				var body model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, model.ErrCodeUnauthorised, body.Error)
				assert.NotEmpty(t, body.CorrelationID)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		method         string
		path           string
		handlerStatus  int
		expectedStatus int
	}{
		{
			name:           "Successful request",
			method:         http.MethodGet,
			path:           "/api/coupons",
			handlerStatus:  http.StatusOK,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not found request",
			method:         http.MethodGet,
			path:           "/api/unknown",
			handlerStatus:  http.StatusNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Conflict",
			method:         http.MethodPost,
			path:           "/api/coupons/1/redeem",
			handlerStatus:  http.StatusConflict,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			handler := Logging(logger)(testHandler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		shouldPanic    bool
		panicValue     any
		expectedStatus int
	}{
		{
			name:           "No panic",
			shouldPanic:    false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Panic with string",
			shouldPanic:    true,
			panicValue:     "something went wrong",
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "Panic with error",
			shouldPanic:    true,
			panicValue:     assert.AnError,
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := chimw.RequestID(Recovery(logger)(testHandler))

			req := httptest.NewRequest(http.MethodGet, "/api/coupons", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.shouldPanic {
				var body model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
				assert.Equal(t, model.ErrCodeInternalError, body.Error)
				assert.NotEmpty(t, body.CorrelationID)
			}
		})
	}
}

func TestUserIDContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := UserIDFromContext(WithUserID(req.Context(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestResponseWriter(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusNotFound, http.StatusServiceUnavailable} {
		w := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		rw.WriteHeader(status)

		assert.Equal(t, status, rw.statusCode)
		assert.Equal(t, status, w.Code)
	}
}
