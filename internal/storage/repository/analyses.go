package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/beluxlabs/belux-backend/internal/models"
)

// SaveFacialAnalysis persists an AI facial analysis artifact.
func (s *Storage) SaveFacialAnalysis(ctx context.Context, analysis models.FacialAnalysis) error {
	const op = "storage.SaveFacialAnalysis"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO facial_analyses (id, user_id, skin_type, oiliness, pores,
			      texture, fine_lines, spots, acne, sensitivity, recommendations, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := s.DB.ExecContext(ctx, query,
		analysis.ID, analysis.UserID, analysis.SkinType, analysis.Oiliness, analysis.Pores,
		analysis.Texture, analysis.FineLines, analysis.Spots, analysis.Acne,
		analysis.Sensitivity, analysis.Recommendations, analysis.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListFacialAnalyses returns the user's analyses, most recent first.
func (s *Storage) ListFacialAnalyses(ctx context.Context, userID string) ([]*models.FacialAnalysis, error) {
	const op = "storage.ListFacialAnalyses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, skin_type, oiliness, pores, texture,
			      fine_lines, spots, acne, sensitivity, recommendations, created_at
			  FROM facial_analyses
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.FacialAnalysis
	for rows.Next() {
		var a models.FacialAnalysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.SkinType, &a.Oiliness, &a.Pores,
			&a.Texture, &a.FineLines, &a.Spots, &a.Acne, &a.Sensitivity,
			&a.Recommendations, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SaveRecommendation persists the product recommendation derived from
// a facial analysis.
func (s *Storage) SaveRecommendation(ctx context.Context, rec models.ProductRecommendation) error {
	const op = "storage.SaveRecommendation"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	productsJSON, err := json.Marshal(rec.Products)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO product_recommendations (id, user_id, analysis_id, products, reasoning, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.DB.ExecContext(ctx, query,
		rec.ID, rec.UserID, rec.AnalysisID, productsJSON, rec.Reasoning, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListRecommendations returns the user's product recommendations,
// most recent first.
func (s *Storage) ListRecommendations(ctx context.Context, userID string) ([]*models.ProductRecommendation, error) {
	const op = "storage.ListRecommendations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, analysis_id, products, reasoning, created_at
			  FROM product_recommendations
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ProductRecommendation
	for rows.Next() {
		var r models.ProductRecommendation
		var productsJSON []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.AnalysisID, &productsJSON,
			&r.Reasoning, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal(productsJSON, &r.Products); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
