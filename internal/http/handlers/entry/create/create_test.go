package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/beluxlabs/belux-backend/internal/models"
	entryservice "github.com/beluxlabs/belux-backend/internal/services/entry"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateOrGetForDay(ctx context.Context, userID, date string) (*models.DailyEntry, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyEntry), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateEntryHandler_ServeHTTP(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "success - entry resolved",
			requestBody: models.CreateEntryRequest{UserID: "user-1", Date: "2025-03-10"},
			setupMocks: func(s *MockService) {
				s.On("CreateOrGetForDay", mock.Anything, "user-1", "2025-03-10").Return(&models.DailyEntry{
					ID:        "entry-1",
					UserID:    "user-1",
					Date:      day,
					Checklist: models.DefaultDailyChecklist(),
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"entry-1"`,
		},
		{
			name:           "invalid JSON",
			requestBody:    "not a json",
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "missing user id",
			requestBody:    models.CreateEntryRequest{Date: "2025-03-10"},
			setupMocks:     func(*MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"field UserID is a required field"}`,
		},
		{
			name:        "malformed date",
			requestBody: models.CreateEntryRequest{UserID: "user-1", Date: "10/03/2025"},
			setupMocks: func(s *MockService) {
				s.On("CreateOrGetForDay", mock.Anything, "user-1", "10/03/2025").Return(nil, entryservice.ErrInvalidDate).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid date, want 2006-01-02"}`,
		},
		{
			name:        "storage error",
			requestBody: models.CreateEntryRequest{UserID: "user-1"},
			setupMocks: func(s *MockService) {
				s.On("CreateOrGetForDay", mock.Anything, "user-1", "").Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create daily entry"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/daily-entries/create", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
