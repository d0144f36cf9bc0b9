package login

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/services/auth"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (string, string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.String(1), args.Error(2)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name: "успешный вход",
			body: `{"username":"alice","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "secret123").
					Return("jwt-token", models.RoleUser, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"jwt-token"`,
			expectCookie:   true,
		},
		{
			name:           "некорректный JSON",
			body:           `{not json`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "пустой пароль",
			body:           `{"username":"alice","password":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "неверные учетные данные",
			body: `{"username":"alice","password":"wrongpass"}`,
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "alice", "wrongpass").
					Return("", "", auth.ErrInvalidCredentials).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"invalid credentials"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, time.Hour)

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			if tt.expectCookie {
				cookies := w.Result().Cookies()
				require.Len(t, cookies, 1)
				assert.Equal(t, middlewarectx.SessionCookie, cookies[0].Name)
				assert.Equal(t, "jwt-token", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			}
			mockService.AssertExpectations(t)
		})
	}
}
