package admingenerate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) GenerateCode(ctx context.Context) (*models.PremiumCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PremiumCode), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestAdminGenerateHandler_ServeHTTP(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success - code minted",
			requestBody: models.GenerateCodeRequest{AdminPassword: "s3cret"},
			setupMocks: func(s *MockService) {
				s.On("GenerateCode", mock.Anything).Return(&models.PremiumCode{Code: "BELUXAB12CD34"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"code":"BELUXAB12CD34"}}`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "missing password",
			requestBody:    models.GenerateCodeRequest{},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field AdminPassword is a required field"}`,
		},
		{
			name:           "wrong password",
			requestBody:    models.GenerateCodeRequest{AdminPassword: "guess"},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"wrong admin password"}`,
		},
		{
			name:        "minting failure",
			requestBody: models.GenerateCodeRequest{AdminPassword: "s3cret"},
			setupMocks: func(s *MockService) {
				s.On("GenerateCode", mock.Anything).Return(nil, errors.New("collision budget exhausted")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not generate code"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service, string(hash))

			tt.setupMocks(service)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/generate-premium-code", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
