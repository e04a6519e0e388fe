package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beluxlabs/belux-backend/internal/models"
)

func TestStorage_RedeemCode(t *testing.T) {
	ctx := context.Background()
	redeemedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	expiresAt := redeemedAt.AddDate(0, 0, 30)

	t.Run("burns the code and grants premium atomically", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "Ana Souza", "ana@example.com")
		factory.CreateCode(t, "BELUXAB12CD34")

		err := storage.RedeemCode(ctx, userID, "BELUXAB12CD34", redeemedAt, expiresAt)
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, userID)
		require.NoError(t, err)
		assert.True(t, user.IsPremium)
		assert.Equal(t, "BELUXAB12CD34", user.PremiumCode)
		require.NotNil(t, user.PremiumCodeExpiresAt)
		assert.True(t, user.PremiumCodeExpiresAt.Equal(expiresAt))

		code, err := storage.GetCode(ctx, "BELUXAB12CD34")
		require.NoError(t, err)
		assert.True(t, code.Used)
		require.NotNil(t, code.UsedBy)
		assert.Equal(t, userID, *code.UsedBy)
	})

	t.Run("second redemption conflicts", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		first := factory.CreateUser(t, "Ana Souza", "ana@example.com")
		second := factory.CreateUser(t, "Bia Lima", "bia@example.com")
		factory.CreateCode(t, "BELUXAB12CD34")

		require.NoError(t, storage.RedeemCode(ctx, first, "BELUXAB12CD34", redeemedAt, expiresAt))

		err := storage.RedeemCode(ctx, second, "BELUXAB12CD34", redeemedAt, expiresAt)
		require.ErrorIs(t, err, ErrCodeAlreadyUsed)

		user, err := storage.GetUser(ctx, second)
		require.NoError(t, err)
		assert.False(t, user.IsPremium)
	})

	t.Run("concurrent redemptions burn the code exactly once", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateCode(t, "BELUXAB12CD34")

		const contenders = 8
		users := make([]string, contenders)
		for i := range contenders {
			users[i] = factory.CreateUser(t, "Contender", uuid.New().String()+"@example.com")
		}

		errs := make(chan error, contenders)
		for i := range contenders {
			go func() {
				errs <- storage.RedeemCode(ctx, users[i], "BELUXAB12CD34", redeemedAt, expiresAt)
			}()
		}

		var won, lost int
		for range contenders {
			switch err := <-errs; {
			case err == nil:
				won++
			case errors.Is(err, ErrCodeAlreadyUsed):
				lost++
			default:
				t.Fatalf("unexpected redemption error: %v", err)
			}
		}
		assert.Equal(t, 1, won)
		assert.Equal(t, contenders-1, lost)
	})

	t.Run("unknown code", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "Ana Souza", "ana@example.com")

		err := storage.RedeemCode(ctx, userID, "BELUX00000000", redeemedAt, expiresAt)
		require.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("unknown user rolls back the burn", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		factory.CreateCode(t, "BELUXAB12CD34")

		err := storage.RedeemCode(ctx, uuid.New().String(), "BELUXAB12CD34", redeemedAt, expiresAt)
		require.ErrorIs(t, err, ErrUserNotFound)

		code, err := storage.GetCode(ctx, "BELUXAB12CD34")
		require.NoError(t, err)
		assert.False(t, code.Used, "failed grant must leave the code unused")
	})
}

func TestStorage_UpsertPremiumByEmail(t *testing.T) {
	ctx := context.Background()
	activatedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	expiresAt := activatedAt.AddDate(0, 0, 30)

	t.Run("creates missing user as premium", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		newID := uuid.New().String()
		user, err := storage.UpsertPremiumByEmail(ctx, newID, "ana@example.com", "Ana Souza", activatedAt, expiresAt)
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.True(t, user.IsPremium)
		require.NotNil(t, user.TrialEndsAt)
		assert.True(t, user.TrialEndsAt.Equal(expiresAt))
	})

	t.Run("upgrades existing user keeping the id", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		existingID := factory.CreateUser(t, "Ana Souza", "ana@example.com")

		user, err := storage.UpsertPremiumByEmail(ctx, uuid.New().String(), "ana@example.com", "Ana Souza", activatedAt, expiresAt)
		require.NoError(t, err)
		assert.Equal(t, existingID, user.ID, "conflict path must keep the original row")
		assert.True(t, user.IsPremium)
	})
}

func TestStorage_GrantPremiumByEmail(t *testing.T) {
	ctx := context.Background()
	activatedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	expiresAt := activatedAt.AddDate(0, 0, 7)

	t.Run("grants to existing user and records the payment", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "Ana Souza", "ana@example.com")

		err := storage.GrantPremiumByEmail(ctx, "ana@example.com", activatedAt, expiresAt, "pay-42")
		require.NoError(t, err)

		user, err := storage.GetUser(ctx, userID)
		require.NoError(t, err)
		assert.True(t, user.IsPremium)
		assert.Equal(t, "pay-42", user.LastPaymentID)
	})

	t.Run("never creates users", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		err := storage.GrantPremiumByEmail(ctx, "ghost@example.com", activatedAt, expiresAt, "pay-42")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestStorage_DailyEntries(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("find by day returns the created entry", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "Ana Souza", "ana@example.com")

		entry := models.DailyEntry{
			ID:               uuid.New().String(),
			UserID:           userID,
			Date:             day,
			ProductsPhotos:   []string{},
			ProductsAnalysis: []string{},
			Checklist:        models.DefaultDailyChecklist(),
			CreatedAt:        day,
			UpdatedAt:        day,
		}
		require.NoError(t, storage.CreateEntry(ctx, entry))

		got, err := storage.FindEntryByDay(ctx, userID, day)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Len(t, got.Checklist, 5)

		_, err = storage.FindEntryByDay(ctx, userID, day.AddDate(0, 0, 1))
		require.ErrorIs(t, err, ErrEntryNotFound)
	})

	t.Run("append product analysis keeps the lists parallel", func(t *testing.T) {
		storage, cleanup := setupTestDatabase(t)
		defer cleanup()

		factory := NewTestDataFactory(storage)
		userID := factory.CreateUser(t, "Ana Souza", "ana@example.com")

		entry := models.DailyEntry{
			ID:               uuid.New().String(),
			UserID:           userID,
			Date:             day,
			ProductsPhotos:   []string{},
			ProductsAnalysis: []string{},
			Checklist:        models.DefaultDailyChecklist(),
			CreatedAt:        day,
			UpdatedAt:        day,
		}
		require.NoError(t, storage.CreateEntry(ctx, entry))

		require.NoError(t, storage.AppendProductAnalysis(ctx, entry.ID, "cGhvdG8x", "Sérum hidratante"))
		require.NoError(t, storage.AppendProductAnalysis(ctx, entry.ID, "cGhvdG8y", "Protetor solar"))

		got, err := storage.GetEntry(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"cGhvdG8x", "cGhvdG8y"}, got.ProductsPhotos)
		assert.Equal(t, []string{"Sérum hidratante", "Protetor solar"}, got.ProductsAnalysis)
	})
}

func TestStorage_FindPremiumExpiringToday(t *testing.T) {
	ctx := context.Background()

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	now := time.Now().UTC()
	factory.CreatePremiumUser(t, "Expiring Today", "today@example.com", now.AddDate(0, 0, -30), now)
	factory.CreatePremiumUser(t, "Expiring Later", "later@example.com", now, now.AddDate(0, 0, 10))
	factory.CreateUser(t, "Free User", "free@example.com")

	users, err := storage.FindPremiumExpiringToday(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "today@example.com", users[0].Email)
}

func TestStorage_SavePaymentNotification(t *testing.T) {
	ctx := context.Background()

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	id, err := storage.SavePaymentNotification(ctx, models.PaymentNotification{
		EventType: "payment",
		Action:    "payment.updated",
		Payload:   []byte(`{"type":"payment","data":{"id":"pay-42"}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, id)
}
