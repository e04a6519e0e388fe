package repository

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory seeds rows for the integration tests.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory creates a factory over the given storage.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser inserts a plain non-premium user and returns its id.
func (f *TestDataFactory) CreateUser(t *testing.T, fullName, email string) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users (id, full_name, email)
		VALUES ($1, $2, $3)`,
		id, fullName, email)
	require.NoError(t, err)
	return id
}

// CreatePremiumUser inserts a user with an active premium window.
func (f *TestDataFactory) CreatePremiumUser(t *testing.T, fullName, email string,
	activatedAt, expiresAt time.Time) string {
	id := uuid.New().String()
	_, err := f.storage.DB.Exec(`INSERT INTO users
		(id, full_name, email, is_premium, premium_activated_at, trial_ends_at)
		VALUES ($1, $2, $3, TRUE, $4, $5)`,
		id, fullName, email, activatedAt, expiresAt)
	require.NoError(t, err)
	return id
}

// CreateCode inserts an unused premium code.
func (f *TestDataFactory) CreateCode(t *testing.T, code string) {
	_, err := f.storage.DB.Exec(`INSERT INTO premium_codes (code, created_at)
		VALUES ($1, NOW())`,
		code)
	require.NoError(t, err)
}

// setupTestDatabase starts a PostgreSQL container and applies the schema.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort(nat.Port("5432/tcp")),
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        CREATE TABLE users (
            id UUID PRIMARY KEY,
            full_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            is_premium BOOLEAN NOT NULL DEFAULT FALSE,
            is_subscriber BOOLEAN NOT NULL DEFAULT FALSE,
            premium_activated_at TIMESTAMPTZ,
            subscription_started_at TIMESTAMPTZ,
            trial_ends_at TIMESTAMPTZ,
            premium_code TEXT,
            premium_code_expires_at TIMESTAMPTZ,
            last_payment_id TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE TABLE premium_codes (
            code TEXT PRIMARY KEY,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            used BOOLEAN NOT NULL DEFAULT FALSE,
            used_by UUID REFERENCES users (id),
            used_at TIMESTAMPTZ
        );

        CREATE TABLE daily_entries (
            id UUID PRIMARY KEY,
            user_id UUID NOT NULL REFERENCES users (id),
            date TIMESTAMPTZ NOT NULL,
            face_photo_base64 TEXT,
            face_analysis TEXT,
            products_photos JSONB NOT NULL DEFAULT '[]'::jsonb,
            products_analysis JSONB NOT NULL DEFAULT '[]'::jsonb,
            checklist JSONB NOT NULL DEFAULT '[]'::jsonb,
            observations TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );

        CREATE INDEX idx_daily_entries_user_date ON daily_entries (user_id, date);

        CREATE TABLE payment_notifications (
            id SERIAL PRIMARY KEY,
            event_type TEXT,
            action TEXT,
            payload JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
