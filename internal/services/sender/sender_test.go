package sender

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/video-storefront/internal/lib/smtp"
	"github.com/magabrotheeeer/video-storefront/internal/models"
)

type MockClient struct {
	mock.Mock
	body bytes.Buffer
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func (m *MockClient) Mail(from string) error {
	args := m.Called(from)
	return args.Error(0)
}

func (m *MockClient) Rcpt(to string) error {
	args := m.Called(to)
	return args.Error(0)
}

func (m *MockClient) Data() (io.WriteCloser, error) {
	args := m.Called()
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return nopWriteCloser{&m.body}, nil
}

func (m *MockClient) Quit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Connect() (smtp.Client, error) {
	args := m.Called()
	if res := args.Get(0); res != nil {
		return res.(smtp.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransport) GetSMTPUser() string {
	args := m.Called()
	return args.String(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.OrderEvent{
		CheckoutSessionID: "cs_1",
		AmountTotal:       2499,
		Currency:          "usd",
		Email:             "buyer@example.com",
	})
	require.NoError(t, err)
	return body
}

func TestSendOrderReceipt(t *testing.T) {
	client := new(MockClient)
	client.On("Mail", "shop@example.com").Return(nil).Once()
	client.On("Rcpt", "buyer@example.com").Return(nil).Once()
	client.On("Data").Return(nil, nil).Once()
	client.On("Quit").Return(nil).Once()

	transport := new(MockTransport)
	transport.On("Connect").Return(client, nil).Once()
	transport.On("GetSMTPUser").Return("shop@example.com")

	service := NewSenderService(newNoopLogger(), transport)
	err := service.SendOrderReceipt(eventBody(t))

	require.NoError(t, err)
	// Сумма в письме в основных единицах валюты
	assert.Contains(t, client.body.String(), "24.99 USD")
	assert.Contains(t, client.body.String(), "cs_1")
	client.AssertExpectations(t)
	transport.AssertExpectations(t)
}

func TestSendOrderReceipt_BadPayload(t *testing.T) {
	service := NewSenderService(newNoopLogger(), new(MockTransport))
	err := service.SendOrderReceipt([]byte("{not json"))
	assert.Error(t, err)
}

func TestSendOrderReceipt_ConnectError(t *testing.T) {
	transport := new(MockTransport)
	transport.On("Connect").Return(nil, errors.New("dial failed")).Once()
	transport.On("GetSMTPUser").Return("shop@example.com")

	service := NewSenderService(newNoopLogger(), transport)
	err := service.SendOrderReceipt(eventBody(t))

	assert.Error(t, err)
}
