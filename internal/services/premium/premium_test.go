package premium

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
	"github.com/beluxlabs/belux-backend/internal/storage/repository"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *RepoMock) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) UpsertPremiumByEmail(ctx context.Context, newID, email, fullName string, activatedAt, expiresAt time.Time) (*models.User, error) {
	args := m.Called(ctx, newID, email, fullName, activatedAt, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) GrantPremiumByEmail(ctx context.Context, email string, activatedAt, expiresAt time.Time, paymentID string) error {
	args := m.Called(ctx, email, activatedAt, expiresAt, paymentID)
	return args.Error(0)
}

func (m *RepoMock) SetPremiumExpired(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *RepoMock) ActivateSubscription(ctx context.Context, userID string, startedAt time.Time) error {
	args := m.Called(ctx, userID, startedAt)
	return args.Error(0)
}

func (m *RepoMock) CreateCode(ctx context.Context, code models.PremiumCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *RepoMock) RedeemCode(ctx context.Context, userID, code string, redeemedAt, expiresAt time.Time) error {
	args := m.Called(ctx, userID, code, redeemedAt, expiresAt)
	return args.Error(0)
}

// noopCache never hits; grant paths only need Invalidate to succeed.
type noopCache struct{}

func (noopCache) Get(_ context.Context, key string, result any) (bool, error) { return false, nil }
func (noopCache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	return nil
}
func (noopCache) Invalidate(_ context.Context, key string) error { return nil }

func newTestService(repo *RepoMock) *Service {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := New(repo, noopCache{}, log)
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestRegisterUser_ExistingUserIsReturnedUnchanged(t *testing.T) {
	repo := new(RepoMock)
	existing := &models.User{ID: "u-1", Email: "ana@example.com", FullName: "Ana"}
	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").Return(existing, nil)

	svc := newTestService(repo)
	user, err := svc.RegisterUser(context.Background(), "Ana Again", "ana@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "Ana", user.FullName)
	repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterUser_CreatesNonPremiumUser(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByEmail", mock.Anything, "bia@example.com").
		Return(nil, repository.ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "bia@example.com" && u.FullName == "Bia" && !u.IsPremium && u.ID != ""
	})).Return(nil)

	svc := newTestService(repo)
	user, err := svc.RegisterUser(context.Background(), "Bia", "bia@example.com")

	require.NoError(t, err)
	assert.False(t, user.IsPremium)
	repo.AssertExpectations(t)
}

func TestActivatePremiumAuto_Grants30Days(t *testing.T) {
	repo := new(RepoMock)
	granted := &models.User{ID: "u-1", Email: "ana@example.com", IsPremium: true}
	repo.On("UpsertPremiumByEmail", mock.Anything, mock.Anything, "ana@example.com", "Ana",
		mock.Anything, mock.Anything).Return(granted, nil)

	svc := newTestService(repo)
	user, expiresAt, err := svc.ActivatePremiumAuto(context.Background(), "ana@example.com", "Ana")

	require.NoError(t, err)
	assert.True(t, user.IsPremium)
	assert.Equal(t, svc.now().AddDate(0, 0, 30), expiresAt)
}

func TestRedeemCode_NormalizesBeforeRedeeming(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RedeemCode", mock.Anything, "u-1", "BELUXAB12CD34", mock.Anything, mock.Anything).
		Return(nil)

	svc := newTestService(repo)
	expiresAt, err := svc.RedeemCode(context.Background(), "u-1", "  beluxab12cd34 ")

	require.NoError(t, err)
	assert.Equal(t, svc.now().AddDate(0, 0, 30), expiresAt)
	repo.AssertExpectations(t)
}

func TestRedeemCode_AlreadyUsedIsPropagated(t *testing.T) {
	repo := new(RepoMock)
	repo.On("RedeemCode", mock.Anything, "u-1", mock.Anything, mock.Anything, mock.Anything).
		Return(repository.ErrCodeAlreadyUsed)

	svc := newTestService(repo)
	_, err := svc.RedeemCode(context.Background(), "u-1", "BELUX11223344")

	assert.ErrorIs(t, err, repository.ErrCodeAlreadyUsed)
}

func TestGenerateCode_RetriesOnCollision(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateCode", mock.Anything, mock.Anything).
		Return(repository.ErrCodeExists).Once()
	repo.On("CreateCode", mock.Anything, mock.Anything).Return(nil).Once()

	svc := newTestService(repo)
	code, err := svc.GenerateCode(context.Background())

	require.NoError(t, err)
	assert.Regexp(t, "^BELUX[0-9A-F]{8}$", code.Code)
	repo.AssertNumberOfCalls(t, "CreateCode", 2)
}

func TestGenerateCode_GivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateCode", mock.Anything, mock.Anything).Return(repository.ErrCodeExists)

	svc := newTestService(repo)
	_, err := svc.GenerateCode(context.Background())

	assert.Error(t, err)
	repo.AssertNumberOfCalls(t, "CreateCode", codeMintAttempts)
}

func TestGenerateAndActivateCode_MintsAndRedeemsForNewUser(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByEmail", mock.Anything, "novo@example.com").
		Return(nil, repository.ErrUserNotFound)
	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	repo.On("CreateCode", mock.Anything, mock.Anything).Return(nil)
	repo.On("RedeemCode", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)
	repo.On("GetUser", mock.Anything, mock.Anything).
		Return(&models.User{ID: "u-new", IsPremium: true}, nil)

	svc := newTestService(repo)
	code, user, expiresAt, err := svc.GenerateAndActivateCode(context.Background(), "novo@example.com", "Novo Usuário")

	require.NoError(t, err)
	assert.Regexp(t, "^BELUX[0-9A-F]{8}$", code)
	assert.True(t, user.IsPremium)
	assert.Equal(t, svc.now().AddDate(0, 0, 30), expiresAt)
	repo.AssertExpectations(t)
}

func TestCheckStatus_ActiveReportsDaysRemaining(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo)

	expiresAt := svc.now().AddDate(0, 0, 10)
	repo.On("GetUser", mock.Anything, "u-1").Return(&models.User{
		ID:                   "u-1",
		IsPremium:            true,
		PremiumCodeExpiresAt: &expiresAt,
	}, nil)

	status, err := svc.CheckStatus(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, StatusActive, status.Status)
	assert.True(t, status.IsPremium)
	require.NotNil(t, status.DaysRemaining)
	assert.Equal(t, 10, *status.DaysRemaining)
	repo.AssertNotCalled(t, "SetPremiumExpired", mock.Anything, mock.Anything)
}

func TestCheckStatus_ExpiredGrantIsPersisted(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo)

	expiresAt := svc.now().AddDate(0, 0, -1)
	repo.On("GetUser", mock.Anything, "u-1").Return(&models.User{
		ID:          "u-1",
		IsPremium:   true,
		TrialEndsAt: &expiresAt,
	}, nil)
	repo.On("SetPremiumExpired", mock.Anything, "u-1").Return(nil)

	status, err := svc.CheckStatus(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, StatusExpired, status.Status)
	assert.False(t, status.IsPremium)
	assert.NotEmpty(t, status.Message)
	repo.AssertExpectations(t)
}

func TestCheckStatus_WithoutGrant(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUser", mock.Anything, "u-1").Return(&models.User{ID: "u-1"}, nil)

	svc := newTestService(repo)
	status, err := svc.CheckStatus(context.Background(), "u-1")

	require.NoError(t, err)
	assert.Equal(t, StatusNoPremium, status.Status)
	assert.False(t, status.IsPremium)
}

func TestOnPaymentApproved_UnknownUserIsDropped(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	svc := newTestService(repo)
	err := svc.OnPaymentApproved(context.Background(), "ghost@example.com", "pay-1", 49.9)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "GrantPremiumByEmail",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOnPaymentApproved_Grants7Days(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo)

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").
		Return(&models.User{ID: "u-1", Email: "ana@example.com"}, nil)
	repo.On("GrantPremiumByEmail", mock.Anything, "ana@example.com",
		svc.now(), svc.now().AddDate(0, 0, 7), "pay-1").Return(nil)

	err := svc.OnPaymentApproved(context.Background(), "ana@example.com", "pay-1", 49.9)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestValidatePayment_GrantsAndReturnsUpdatedUser(t *testing.T) {
	repo := new(RepoMock)
	svc := newTestService(repo)

	repo.On("GetUserByEmail", mock.Anything, "ana@example.com").
		Return(&models.User{ID: "u-1", Email: "ana@example.com"}, nil)
	repo.On("GrantPremiumByEmail", mock.Anything, "ana@example.com",
		svc.now(), svc.now().AddDate(0, 0, 7), "").Return(nil)
	repo.On("GetUser", mock.Anything, "u-1").
		Return(&models.User{ID: "u-1", IsPremium: true}, nil)

	user, err := svc.ValidatePayment(context.Background(), "ana@example.com")

	require.NoError(t, err)
	assert.True(t, user.IsPremium)
	repo.AssertExpectations(t)
}
