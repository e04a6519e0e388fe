package quiz

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beluxlabs/belux-backend/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) SaveQuizResult(ctx context.Context, result models.QuizResult) error {
	return m.Called(ctx, result).Error(0)
}

func answer(q, a string) models.QuizAnswer {
	return models.QuizAnswer{Question: q, Answer: a}
}

func TestEvaluate(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		answers []models.QuizAnswer
		want    string
	}{
		{
			name: "acne wins over every other score",
			answers: []models.QuizAnswer{
				answer("Você tem acne com frequência?", "Sim"),
				answer("Sua pele brilha ao longo do dia?", "Sim"),
				answer("Sente ardência com produtos?", "Sim"),
				answer("Sente ressecamento?", "Sim"),
			},
			want: "Acneica",
		},
		{
			name: "sensitive skin",
			answers: []models.QuizAnswer{
				answer("Sente ardência ao aplicar produtos?", "Sim"),
			},
			want: "Sensível",
		},
		{
			name: "oily needs two affirmative oil questions",
			answers: []models.QuizAnswer{
				answer("Sua pele brilha ao longo do dia?", "Sim"),
				answer("Nota excesso de oleosidade na zona T?", "Sim"),
			},
			want: "Oleosa",
		},
		{
			name: "dry skin",
			answers: []models.QuizAnswer{
				answer("Sente ressecamento nas bochechas?", "Sim"),
			},
			want: "Seca",
		},
		{
			// one oily hit and one dry hit: dry reaches its threshold
			// first, so Seca wins over Mista by priority order
			name: "oily and dry together resolve to dry",
			answers: []models.QuizAnswer{
				answer("Sua pele brilha na zona T?", "Sim"),
				answer("Sente ressecamento nas bochechas?", "Sim"),
			},
			want: "Seca",
		},
		{
			name: "all negative answers give normal",
			answers: []models.QuizAnswer{
				answer("Sua pele brilha ao longo do dia?", "Não"),
				answer("Você tem acne?", "Não"),
			},
			want: "Normal",
		},
		{
			name:    "empty submission gives normal",
			answers: nil,
			want:    "Normal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("SaveQuizResult", mock.Anything, mock.AnythingOfType("models.QuizResult")).Return(nil)

			service := New(repo, logger)
			result, err := service.Evaluate(context.Background(), tt.answers)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.SkinType)
			assert.NotEmpty(t, result.Characteristics)
			assert.NotEmpty(t, result.Recommendations)
			repo.AssertExpectations(t)
		})
	}
}

func TestEvaluate_MixedRequiresBothScores(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := new(RepoMock)
	repo.On("SaveQuizResult", mock.Anything, mock.Anything).Return(nil)
	service := New(repo, logger)

	// A single oily hit without any dry hit must not classify as Mista.
	result, err := service.Evaluate(context.Background(), []models.QuizAnswer{
		answer("Sua pele brilha ao longo do dia?", "Sim"),
	})

	require.NoError(t, err)
	assert.Equal(t, "Normal", result.SkinType)
}
