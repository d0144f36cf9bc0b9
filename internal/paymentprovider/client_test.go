package paymentprovider

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateCheckoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))

		_, err := uuid.Parse(r.Header.Get("Idempotence-Key"))
		assert.NoError(t, err, "Idempotence-Key must be a valid uuid")

		var req CreateCheckoutSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.LineItems, 1)
		assert.Equal(t, int64(999), req.LineItems[0].UnitAmount)
		assert.Equal(t, 2, req.LineItems[0].Quantity)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreateCheckoutSessionResponse{
			ID:  "cs_123",
			URL: "https://pay.example/cs_123",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	resp, err := client.CreateCheckoutSession(CreateCheckoutSessionRequest{
		LineItems: []LineItem{{
			Name:       "Видеокурс",
			UnitAmount: 999,
			Currency:   "usd",
			Quantity:   2,
		}},
		Mode:       "payment",
		SuccessURL: "http://localhost/checkout-success",
		CancelURL:  "http://localhost/cart",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", resp.ID)
	assert.Equal(t, "https://pay.example/cs_123", resp.URL)
}

func TestClient_CreateCheckoutSession_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "sk_test")
	_, err := client.CreateCheckoutSession(CreateCheckoutSessionRequest{Mode: "payment"})
	assert.Error(t, err)
}
