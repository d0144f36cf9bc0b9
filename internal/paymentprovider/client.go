package paymentprovider

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client — клиент API платёжного провайдера.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент провайдера.
func NewClient(apiURL, secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(method, path string, body interface{}) (*http.Request, error) {
	url := c.apiURL + path
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")
	// Провайдер дедуплицирует повторные запросы по этому ключу
	req.Header.Set("Idempotence-Key", uuid.New().String())
	return req, nil
}

// CreateCheckoutSession отправляет запрос на создание checkout-сессии
// и возвращает её идентификатор и redirect URL.
func (c *Client) CreateCheckoutSession(reqParams CreateCheckoutSessionRequest) (*CreateCheckoutSessionResponse, error) {
	req, err := c.newRequest("POST", "/checkout/sessions", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, errors.New("unexpected status: " + resp.Status)
	}

	var sessionResp CreateCheckoutSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, err
	}
	return &sessionResp, nil
}
