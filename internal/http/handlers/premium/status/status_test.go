package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/beluxlabs/belux-backend/internal/services/premium"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CheckStatus(ctx context.Context, userID string) (*premium.Status, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*premium.Status), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestStatusHandler_ServeHTTP(t *testing.T) {
	expiresAt := time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC)
	daysRemaining := 10

	tests := []struct {
		name           string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "active premium",
			setupMocks: func(s *MockService) {
				s.On("CheckStatus", mock.Anything, "user-1").Return(&premium.Status{
					IsPremium:     true,
					Status:        premium.StatusActive,
					ExpiresAt:     &expiresAt,
					DaysRemaining: &daysRemaining,
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"is_premium":true,"status":"active","expires_at":"2025-03-20T12:00:00Z","days_remaining":10}}`,
		},
		{
			name: "expired premium",
			setupMocks: func(s *MockService) {
				s.On("CheckStatus", mock.Anything, "user-1").Return(&premium.Status{
					Status:    premium.StatusExpired,
					ExpiredAt: &expiresAt,
					Message:   "Seu acesso premium expirou. Renove sua assinatura!",
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"is_premium":false,"status":"expired","expired_at":"2025-03-20T12:00:00Z","message":"Seu acesso premium expirou. Renove sua assinatura!"}}`,
		},
		{
			name: "unknown user",
			setupMocks: func(s *MockService) {
				s.On("CheckStatus", mock.Anything, "user-1").Return(nil, repository.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name: "storage error",
			setupMocks: func(s *MockService) {
				s.On("CheckStatus", mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not check premium status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/user-1/check-premium-status", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "user-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
