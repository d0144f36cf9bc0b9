package tokenissue

import (
	"context"
	"encoding/json"
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
	"github.com/magabrotheeeer/video-storefront/internal/services/entitlement"
)

// MockService реализует интерфейс tokenissue.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Issue(ctx context.Context, productID int, userUID string) (string, error) {
	args := m.Called(ctx, productID, userUID)
	return args.String(0), args.Error(1)
}

// Выданная ссылка должна разрешаться маршрутом скачивания
// с учётом точки монтирования API.
func TestTokenIssueHandler_DownloadURLResolves(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	mockService := new(MockService)
	mockService.On("Issue", mock.Anything, 5, "uid-1").Return("signed.token", nil).Once()

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/products/{id}/download-token", New(logger, mockService).ServeHTTP)
		r.Get("/downloads/{id}", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "5", chi.URLParam(r, "id"))
			assert.Equal(t, "signed.token", r.URL.Query().Get("token"))
			w.WriteHeader(http.StatusOK)
		})
	})

	issueReq := httptest.NewRequest(http.MethodPost, "/api/v1/products/5/download-token", nil)
	issueReq = issueReq.WithContext(context.WithValue(issueReq.Context(), middlewarectx.UserUID, "uid-1"))
	issueResp := httptest.NewRecorder()
	router.ServeHTTP(issueResp, issueReq)
	assert.Equal(t, http.StatusOK, issueResp.Code)

	var body struct {
		Data struct {
			DownloadURL string `json:"download_url"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(issueResp.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.DownloadURL)

	downloadReq := httptest.NewRequest(http.MethodGet, body.Data.DownloadURL, nil)
	downloadResp := httptest.NewRecorder()
	router.ServeHTTP(downloadResp, downloadReq)
	assert.Equal(t, http.StatusOK, downloadResp.Code,
		"issued download_url %s should resolve to the download route", body.Data.DownloadURL)
	mockService.AssertExpectations(t)
}

func TestTokenIssueHandler(t *testing.T) {
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
			name:    "токен выдан",
			id:      "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Issue", mock.Anything, 5, "uid-1").Return("signed.token", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"download_url":"/api/v1/downloads/5?token=signed.token"`,
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
			name:    "товар не найден",
			id:      "404",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Issue", mock.Anything, 404, "uid-1").
					Return("", entitlement.ErrProductNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"product not found"`,
		},
		{
			name:    "ошибка сервиса",
			id:      "5",
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Issue", mock.Anything, 5, "uid-1").
					Return("", errors.New("hmac error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"could not issue download token"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/products/"+tt.id+"/download-token", nil)
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
