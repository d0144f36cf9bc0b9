package fetch

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/video-storefront/internal/lib/dltoken"
	"github.com/magabrotheeeer/video-storefront/internal/models"
	"github.com/magabrotheeeer/video-storefront/internal/services/catalog"
)

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Open(filename string) (io.ReadCloser, error) {
	args := m.Called(filename)
	if res := args.Get(0); res != nil {
		return res.(io.ReadCloser), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRequest(productID, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/downloads/"+productID+"?token="+token, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", productID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestFetchHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	maker := dltoken.NewMaker("test-secret", 24*time.Hour)

	validToken, err := maker.Issue(5, "uid-1")
	require.NoError(t, err)
	expiredToken := signedToken(t, "test-secret", dltoken.Payload{
		ProductID: 5,
		UserUID:   "uid-1",
		IssuedAt:  time.Now().Add(-48 * time.Hour).Unix(),
	})
	foreignToken, err := dltoken.NewMaker("other-secret", 24*time.Hour).Issue(5, "uid-1")
	require.NoError(t, err)

	tests := []struct {
		name           string
		productID      string
		token          string
		setupMocks     func(*MockCatalog, *MockFileStore)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное скачивание",
			productID: "5",
			token:     validToken,
			setupMocks: func(c *MockCatalog, f *MockFileStore) {
				c.On("GetProduct", mock.Anything, 5).Return(&models.Product{
					ID:       5,
					Filename: "abc.mp4",
				}, nil).Once()
				f.On("Open", "abc.mp4").Return(io.NopCloser(strings.NewReader("video-bytes")), nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "video-bytes",
		},
		{
			name:           "истёкший токен",
			productID:      "5",
			token:          expiredToken,
			setupMocks:     func(_ *MockCatalog, _ *MockFileStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"download token has expired"`,
		},
		{
			name:           "токен с чужой подписью",
			productID:      "5",
			token:          foreignToken,
			setupMocks:     func(_ *MockCatalog, _ *MockFileStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid download token"`,
		},
		{
			name:           "токен на другой товар",
			productID:      "7",
			token:          validToken,
			setupMocks:     func(_ *MockCatalog, _ *MockFileStore) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"token does not match this product"`,
		},
		{
			name:      "товар удалён из каталога",
			productID: "5",
			token:     validToken,
			setupMocks: func(c *MockCatalog, _ *MockFileStore) {
				c.On("GetProduct", mock.Anything, 5).Return(nil, catalog.ErrNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"product not found"`,
		},
		{
			name:      "файл отсутствует в хранилище",
			productID: "5",
			token:     validToken,
			setupMocks: func(c *MockCatalog, f *MockFileStore) {
				c.On("GetProduct", mock.Anything, 5).Return(&models.Product{
					ID:       5,
					Filename: "abc.mp4",
				}, nil).Once()
				f.On("Open", "abc.mp4").Return(nil, errors.New("no such file")).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"file not found"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCatalog := new(MockCatalog)
			mockFiles := new(MockFileStore)
			tt.setupMocks(mockCatalog, mockFiles)

			// Проверка токена идёт через тот же maker, что и выпуск
			handler := New(logger, verifier{maker}, mockCatalog, mockFiles)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, newRequest(tt.productID, tt.token))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
			mockCatalog.AssertExpectations(t)
			mockFiles.AssertExpectations(t)
		})
	}
}

type verifier struct {
	maker *dltoken.Maker
}

func (v verifier) Verify(token string) (*dltoken.Payload, error) {
	return v.maker.Verify(token)
}

// signedToken собирает токен с произвольным временем выдачи,
// подписанный тем же секретом.
func signedToken(t *testing.T, secret string, payload dltoken.Payload) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	encoded := base64.RawURLEncoding.EncodeToString(raw)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(encoded))
	return encoded + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
