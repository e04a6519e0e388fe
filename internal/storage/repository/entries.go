package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/beluxlabs/belux-backend/internal/models"
)

const entryColumns = `id, user_id, date, face_photo_base64, face_analysis,
			  products_photos, products_analysis, checklist, observations,
			  created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }) (*models.DailyEntry, error) {
	e := &models.DailyEntry{}
	var facePhoto, faceAnalysis sql.NullString
	var photosJSON, analysisJSON, checklistJSON []byte
	if err := row.Scan(&e.ID, &e.UserID, &e.Date, &facePhoto, &faceAnalysis,
		&photosJSON, &analysisJSON, &checklistJSON, &e.Observations,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.FacePhotoBase64 = facePhoto.String
	e.FaceAnalysis = faceAnalysis.String
	if err := json.Unmarshal(photosJSON, &e.ProductsPhotos); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(analysisJSON, &e.ProductsAnalysis); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(checklistJSON, &e.Checklist); err != nil {
		return nil, err
	}
	return e, nil
}

// CreateEntry inserts a new daily entry.
func (s *Storage) CreateEntry(ctx context.Context, entry models.DailyEntry) error {
	const op = "storage.CreateEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	checklistJSON, err := json.Marshal(entry.Checklist)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO daily_entries (id, user_id, date, products_photos,
			      products_analysis, checklist, observations, created_at, updated_at)
			  VALUES ($1, $2, $3, '[]'::jsonb, '[]'::jsonb, $4, $5, $6, $6)`
	_, err = s.DB.ExecContext(ctx, query,
		entry.ID, entry.UserID, entry.Date, checklistJSON, entry.Observations, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetEntry returns a daily entry by ID, or ErrEntryNotFound.
func (s *Storage) GetEntry(ctx context.Context, entryID string) (*models.DailyEntry, error) {
	const op = "storage.GetEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + entryColumns + ` FROM daily_entries WHERE id = $1`
	e, err := scanEntry(s.DB.QueryRowContext(ctx, query, entryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// FindEntryByDay returns the entry whose date falls inside
// [dayStart, dayStart+24h), or ErrEntryNotFound.
func (s *Storage) FindEntryByDay(ctx context.Context, userID string, dayStart time.Time) (*models.DailyEntry, error) {
	const op = "storage.FindEntryByDay"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + entryColumns + `
			  FROM daily_entries
			  WHERE user_id = $1 AND date >= $2 AND date < $3`
	e, err := scanEntry(s.DB.QueryRowContext(ctx, query, userID, dayStart, dayStart.AddDate(0, 0, 1)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return e, nil
}

// UpdateEntry writes the mutable fields of an already merged entry.
func (s *Storage) UpdateEntry(ctx context.Context, entry models.DailyEntry) error {
	const op = "storage.UpdateEntry"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	checklistJSON, err := json.Marshal(entry.Checklist)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE daily_entries
			  SET face_photo_base64 = NULLIF($1, ''),
			      face_analysis = NULLIF($2, ''),
			      checklist = $3,
			      observations = $4,
			      updated_at = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		entry.FacePhotoBase64, entry.FaceAnalysis, checklistJSON,
		entry.Observations, entry.UpdatedAt, entry.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrEntryNotFound)
	}
	return nil
}

// AppendProductAnalysis appends a product photo and its analysis text in
// a single statement, so the two parallel lists always grow together.
func (s *Storage) AppendProductAnalysis(ctx context.Context, entryID, photoBase64, analysis string) error {
	const op = "storage.AppendProductAnalysis"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE daily_entries
			  SET products_photos = products_photos || to_jsonb($1::text),
			      products_analysis = products_analysis || to_jsonb($2::text),
			      updated_at = NOW()
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, photoBase64, analysis, entryID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrEntryNotFound)
	}
	return nil
}

// ListEntriesSince returns the user's entries newer than the given
// moment, most recent first.
func (s *Storage) ListEntriesSince(ctx context.Context, userID string, since time.Time) ([]*models.DailyEntry, error) {
	const op = "storage.ListEntriesSince"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + entryColumns + `
			  FROM daily_entries
			  WHERE user_id = $1 AND date >= $2
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEntries returns every entry of the user, used by the calendar gate.
func (s *Storage) ListEntries(ctx context.Context, userID string) ([]*models.DailyEntry, error) {
	const op = "storage.ListEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + entryColumns + `
			  FROM daily_entries
			  WHERE user_id = $1
			  ORDER BY date`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
