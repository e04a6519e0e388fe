// Package analysis runs the premium facial analysis: it gates access,
// calls the AI analyzer, persists the structured report and derives the
// Belux product recommendation from it.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/beluxlabs/belux-backend/internal/models"
	"github.com/beluxlabs/belux-backend/internal/skinai"
)

// ErrPremiumRequired is returned when a user without an active premium
// grant or subscription requests an analysis.
var ErrPremiumRequired = errors.New("premium access required")

// Repository declares the storage operations the analysis flow needs.
type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	SaveFacialAnalysis(ctx context.Context, analysis models.FacialAnalysis) error
	ListFacialAnalyses(ctx context.Context, userID string) ([]*models.FacialAnalysis, error)
	SaveRecommendation(ctx context.Context, rec models.ProductRecommendation) error
	ListRecommendations(ctx context.Context, userID string) ([]*models.ProductRecommendation, error)
}

// FaceAnalyzer produces a structured report from a face photo.
type FaceAnalyzer interface {
	AnalyzeFace(ctx context.Context, imageBase64 string) (*skinai.FaceReport, error)
}

// Service runs facial analyses and product recommendations.
type Service struct {
	repo     Repository
	analyzer FaceAnalyzer
	log      *slog.Logger
	now      func() time.Time
}

// New creates a new analysis Service.
func New(repo Repository, analyzer FaceAnalyzer, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Result bundles the stored analysis with its recommendation.
type Result struct {
	Analysis       *models.FacialAnalysis       `json:"analysis"`
	Recommendation *models.ProductRecommendation `json:"recommendation"`
}

// AnalyzeFace gates on premium, runs the AI analysis, persists the
// report and its Belux recommendation and returns both. Unlike the
// daily-entry analyses this one surfaces analyzer failures: the caller
// paid for the result and must know it did not happen.
func (s *Service) AnalyzeFace(ctx context.Context, userID, imageBase64 string) (*Result, error) {
	const op = "services.analysis.AnalyzeFace"

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsPremium && !user.IsSubscriber {
		return nil, fmt.Errorf("%s: %w", op, ErrPremiumRequired)
	}

	report, err := s.analyzer.AnalyzeFace(ctx, imageBase64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	analysis := models.FacialAnalysis{
		ID:              uuid.New().String(),
		UserID:          userID,
		SkinType:        report.SkinType,
		Oiliness:        report.Oiliness,
		Pores:           report.Pores,
		Texture:         report.Texture,
		FineLines:       report.FineLines,
		Spots:           report.Spots,
		Acne:            report.Acne,
		Sensitivity:     report.Sensitivity,
		Recommendations: report.Recommendations,
		CreatedAt:       now,
	}
	if err := s.repo.SaveFacialAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products, reasoning := RecommendProducts(&analysis)
	rec := models.ProductRecommendation{
		ID:         uuid.New().String(),
		UserID:     userID,
		AnalysisID: analysis.ID,
		Products:   products,
		Reasoning:  reasoning,
		CreatedAt:  now,
	}
	if err := s.repo.SaveRecommendation(ctx, rec); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("facial analysis completed",
		slog.String("user_id", userID),
		slog.String("analysis_id", analysis.ID),
		slog.String("skin_type", analysis.SkinType))
	return &Result{Analysis: &analysis, Recommendation: &rec}, nil
}

// RecommendProducts maps an analysis to the Belux product line. Several
// rules may fire together; when none fires the hydrating serum is the
// default.
func RecommendProducts(a *models.FacialAnalysis) ([]string, string) {
	skinType := strings.ToLower(a.SkinType)
	oiliness := strings.ToLower(a.Oiliness)
	spots := strings.ToLower(a.Spots)
	texture := strings.ToLower(a.Texture)

	var products []string
	var reasoning strings.Builder

	if strings.Contains(skinType, "oleosa") || strings.Contains(skinType, "acneica") ||
		strings.Contains(oiliness, "alta") {
		products = append(products, "Sérum Oil Control Belux")
		reasoning.WriteString("Sérum Oil Control para controlar oleosidade e reduzir brilho. ")
	}

	if strings.Contains(skinType, "seca") || strings.Contains(texture, "irregular") ||
		strings.Contains(texture, "áspera") {
		products = append(products, "Sérum Hidratante Belux")
		reasoning.WriteString("Sérum Hidratante para melhorar textura e hidratação profunda. ")
	}

	if strings.Contains(spots, "manchas") || strings.Contains(spots, "moderadas") ||
		strings.Contains(spots, "intensas") {
		products = append(products, "Sérum Glow Face Belux", "Nanovitaminacida Belux")
		reasoning.WriteString("Sérum Glow Face e Nanovitaminacida juntos para clareamento e uniformização do tom. ")
	}

	if len(products) == 0 {
		products = []string{"Sérum Hidratante Belux"}
		return products, "Sérum Hidratante para manter a pele saudável e equilibrada."
	}
	return products, strings.TrimSpace(reasoning.String())
}

// ListAnalyses returns the user's analyses, most recent first.
func (s *Service) ListAnalyses(ctx context.Context, userID string) ([]*models.FacialAnalysis, error) {
	const op = "services.analysis.ListAnalyses"

	analyses, err := s.repo.ListFacialAnalyses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return analyses, nil
}

// ListRecommendations returns the user's recommendations, most recent
// first.
func (s *Service) ListRecommendations(ctx context.Context, userID string) ([]*models.ProductRecommendation, error) {
	const op = "services.analysis.ListRecommendations"

	recs, err := s.repo.ListRecommendations(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recs, nil
}
