package calendarstatus

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

	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) DayStatuses(ctx context.Context, userID string) (map[string]models.DayStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.DayStatus), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCalendarStatusHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success - statuses returned",
			setupMocks: func(s *MockService) {
				s.On("DayStatuses", mock.Anything, "user-1").Return(map[string]models.DayStatus{
					"2025-03-10": {Status: "unlocked", EntryExists: true, HasPhoto: true},
					"2025-03-11": {Status: "blocked"},
				}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"2025-03-10"`,
		},
		{
			name: "unknown user",
			setupMocks: func(s *MockService) {
				s.On("DayStatuses", mock.Anything, "user-1").Return(nil, repository.ErrUserNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
		{
			name: "storage error",
			setupMocks: func(s *MockService) {
				s.On("DayStatuses", mock.Anything, "user-1").Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not compute calendar statuses"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := new(MockService)
			handler := New(newNoopLogger(), service)

			tt.setupMocks(service)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/daily-entries/user-1/calendar-status", nil)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "user-1")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			service.AssertExpectations(t)
		})
	}
}
