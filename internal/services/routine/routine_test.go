package routine

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beluxlabs/belux-backend/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateRoutines(ctx context.Context, routines []models.DailyRoutine) error {
	args := m.Called(ctx, routines)
	return args.Error(0)
}

func (m *RepoMock) ListRoutines(ctx context.Context, userID string) ([]*models.DailyRoutine, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DailyRoutine), args.Error(1)
}

func TestCreate_SeedsSevenConsecutiveDays(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateRoutines", mock.Anything, mock.Anything).Return(nil)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := New(repo, log)
	start := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	routines, err := svc.Create(context.Background(), "u-1")

	require.NoError(t, err)
	require.Len(t, routines, 7)
	for i, r := range routines {
		assert.Equal(t, i+1, r.Day)
		assert.Equal(t, start.AddDate(0, 0, i), r.Date)
		assert.Equal(t, "u-1", r.UserID)
		assert.False(t, r.Completed)
		require.Len(t, r.Checklist, 5)
		for _, item := range r.Checklist {
			assert.False(t, item.Completed)
		}
	}
	repo.AssertExpectations(t)
}

func TestCreate_ChecklistCopiesAreIndependent(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateRoutines", mock.Anything, mock.Anything).Return(nil)

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := New(repo, log)

	routines, err := svc.Create(context.Background(), "u-1")
	require.NoError(t, err)

	routines[0].Checklist[0].Completed = true
	assert.False(t, routines[1].Checklist[0].Completed)
}
