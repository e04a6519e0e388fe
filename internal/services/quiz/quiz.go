// Package quiz evaluates the free skin-type quiz: weighted keyword
// scoring over the answers, a fixed priority order of thresholds, and
// persistence of the resulting category.
package quiz

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// Repository persists quiz outcomes.
type Repository interface {
	SaveQuizResult(ctx context.Context, result models.QuizResult) error
}

// Service evaluates submissions and stores the results.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a new quiz Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

type scores struct {
	oily, dry, acne, sensitive int
}

// score accumulates the four keyword counters over all answers. The
// questions carry the symptom keyword; the answer only confirms it.
func score(answers []models.QuizAnswer) scores {
	var sc scores
	for _, answer := range answers {
		q := strings.ToLower(answer.Question)
		a := strings.ToLower(answer.Answer)
		yes := strings.Contains(a, "sim")

		if strings.Contains(q, "brilha") && yes {
			sc.oily += 2
		}
		if strings.Contains(q, "oleosidade") && yes {
			sc.oily += 2
		}
		if strings.Contains(q, "ressecamento") && yes {
			sc.dry += 2
		}
		if strings.Contains(q, "acne") && yes {
			sc.acne += 2
		}
		if (strings.Contains(q, "ardência") || strings.Contains(q, "sensível")) && yes {
			sc.sensitive += 2
		}
		if strings.Contains(q, "manchas") && yes {
			sc.sensitive++
		}
	}
	return sc
}

// classify applies the fixed priority order: acne wins over sensitive,
// sensitive over oily, and the mixed type needs both tendencies.
func classify(sc scores) (skinType, characteristics, recommendations string) {
	switch {
	case sc.acne >= 2:
		return "Acneica",
			"Pele com tendência a acne, pode ter oleosidade aumentada e poros dilatados.",
			"Produtos específicos para acne, limpeza suave e hidratação oil-free."
	case sc.sensitive >= 2:
		return "Sensível",
			"Pele reativa, pode apresentar vermelhidão e ardência com produtos inadequados.",
			"Produtos hipoalergênicos, sem fragrância, com ingredientes calmantes."
	case sc.oily >= 3:
		return "Oleosa",
			"Pele com produção aumentada de sebo, brilho excessivo, principalmente na zona T.",
			"Produtos matificantes, limpeza profunda, hidratação oil-free."
	case sc.dry >= 2:
		return "Seca",
			"Pele com baixa produção de oleosidade, pode ter sensação de repuxamento.",
			"Hidratação intensa, produtos nutritivos, evitar limpeza agressiva."
	case sc.oily >= 1 && sc.dry >= 1:
		return "Mista",
			"Oleosidade na zona T (testa, nariz, queixo) e ressecamento nas bochechas.",
			"Tratamento específico por zona, equilíbrio da oleosidade."
	default:
		return "Normal",
			"Pele equilibrada, sem excesso de oleosidade ou ressecamento.",
			"Manutenção com produtos suaves, hidratação regular, proteção solar."
	}
}

// Evaluate scores the submission, always produces a category and
// persists the result.
func (s *Service) Evaluate(ctx context.Context, answers []models.QuizAnswer) (*models.QuizResult, error) {
	skinType, characteristics, recommendations := classify(score(answers))

	result := models.QuizResult{
		ID:              uuid.New().String(),
		SkinType:        skinType,
		Characteristics: characteristics,
		Recommendations: recommendations,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.repo.SaveQuizResult(ctx, result); err != nil {
		return nil, err
	}

	s.log.Info("quiz evaluated", slog.String("skin_type", skinType))
	return &result, nil
}
