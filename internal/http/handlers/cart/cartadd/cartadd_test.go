package cartadd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/video-storefront/internal/http/middlewarectx"
)

// MockService реализует интерфейс cartadd.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, userUID string, productID int) error {
	args := m.Called(ctx, userUID, productID)
	return args.Error(0)
}

func TestCartAddHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	tests := []struct {
		name           string
		id             string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "товар добавлен в корзину",
			id:      "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", 5).Return(nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"product_id":5`,
		},
		{
			name:           "нет сессии",
			id:             "5",
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
		{
			name:           "некорректный id в URL",
			id:             "abc",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"failed to decode id from url"`,
		},
		{
			name:    "ошибка хранилища корзин",
			id:      "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Add", mock.Anything, "uid-1", 5).Return(errors.New("redis down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not add product to cart"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/cart/items/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			if tt.userUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockService.AssertExpectations(t)
		})
	}
}
