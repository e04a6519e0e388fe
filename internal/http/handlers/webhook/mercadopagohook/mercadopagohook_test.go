package mercadopagohook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/beluxlabs/belux-backend/internal/mercadopago"
	"github.com/beluxlabs/belux-backend/internal/models"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockGateway) GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Payment), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) OnPaymentApproved(ctx context.Context, email, paymentID string, amount float64) error {
	args := m.Called(ctx, email, paymentID, amount)
	return args.Error(0)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) SavePaymentNotification(ctx context.Context, n models.PaymentNotification) (int, error) {
	args := m.Called(ctx, n)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestMercadoPagoHookHandler_ServeHTTP(t *testing.T) {
	ackBody := `{"status":"OK","data":{"received":true}}`
	paymentEvent := `{"type":"payment","action":"payment.updated","data":{"id":"pay-42"}}`

	tests := []struct {
		name        string
		requestBody string
		setupMocks  func(*MockGateway, *MockService, *MockAuditor)
	}{
		{
			name:        "approved payment grants premium",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, s *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(1, nil).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(&mercadopago.Payment{
					Status:            mercadopago.StatusApproved,
					TransactionAmount: 49.90,
					Metadata:          map[string]any{"user_email": "ana@example.com"},
				}, nil).Once()
				s.On("OnPaymentApproved", mock.Anything, "ana@example.com", "pay-42", 49.90).Return(nil).Once()
			},
		},
		{
			name:        "unparsable body still acknowledged",
			requestBody: "not a json",
			setupMocks:  func(*MockGateway, *MockService, *MockAuditor) {},
		},
		{
			name:        "non-payment event skipped after audit",
			requestBody: `{"type":"plan","action":"plan.updated","data":{"id":"plan-1"}}`,
			setupMocks: func(_ *MockGateway, _ *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(2, nil).Once()
			},
		},
		{
			name:        "unconfigured gateway acknowledges without processing",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, _ *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(3, nil).Once()
				g.On("Configured").Return(false).Once()
			},
		},
		{
			name:        "payment fetch failure absorbed",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, _ *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(4, nil).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(nil, errors.New("gateway timeout")).Once()
			},
		},
		{
			name:        "pending payment grants nothing",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, _ *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(5, nil).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(&mercadopago.Payment{
					Status: "pending",
				}, nil).Once()
			},
		},
		{
			name:        "approved payment without e-mail dropped",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, _ *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(6, nil).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(&mercadopago.Payment{
					Status: mercadopago.StatusApproved,
				}, nil).Once()
			},
		},
		{
			name:        "grant failure still acknowledged",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, s *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(7, nil).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(&mercadopago.Payment{
					Status:            mercadopago.StatusApproved,
					TransactionAmount: 49.90,
					ExternalReference: "ana@example.com",
				}, nil).Once()
				s.On("OnPaymentApproved", mock.Anything, "ana@example.com", "pay-42", 49.90).Return(errors.New("db down")).Once()
			},
		},
		{
			name:        "audit failure does not stop processing",
			requestBody: paymentEvent,
			setupMocks: func(g *MockGateway, s *MockService, a *MockAuditor) {
				a.On("SavePaymentNotification", mock.Anything, mock.Anything).Return(0, errors.New("audit table gone")).Once()
				g.On("Configured").Return(true).Once()
				g.On("GetPayment", mock.Anything, "pay-42").Return(&mercadopago.Payment{
					Status:            mercadopago.StatusApproved,
					TransactionAmount: 49.90,
					Metadata:          map[string]any{"user_email": "ana@example.com"},
				}, nil).Once()
				s.On("OnPaymentApproved", mock.Anything, "ana@example.com", "pay-42", 49.90).Return(nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := new(MockGateway)
			service := new(MockService)
			auditor := new(MockAuditor)
			handler := New(newNoopLogger(), gateway, service, auditor)

			tt.setupMocks(gateway, service, auditor)

			req := httptest.NewRequest(http.MethodPost, "/webhook/mercadopago", bytes.NewReader([]byte(tt.requestBody)))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, ackBody, w.Body.String())

			gateway.AssertExpectations(t)
			service.AssertExpectations(t)
			auditor.AssertExpectations(t)
		})
	}
}

func TestMercadoPagoHookHandler_AuditsRawPayload(t *testing.T) {
	gateway := new(MockGateway)
	service := new(MockService)
	auditor := new(MockAuditor)
	handler := New(newNoopLogger(), gateway, service, auditor)

	body := `{"type":"plan","action":"plan.created","data":{"id":"plan-9"}}`
	auditor.On("SavePaymentNotification", mock.Anything, mock.MatchedBy(func(n models.PaymentNotification) bool {
		return n.EventType == "plan" && n.Action == "plan.created" && string(n.Payload) == body
	})).Return(1, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/webhook/mercadopago", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	auditor.AssertExpectations(t)
}
