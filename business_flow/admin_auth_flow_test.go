package businessflow

import (
	"context"
	"testing"
	"time"

	"github.com/cliphaus/cliphaus-platform/app/dto"
	"github.com/cliphaus/cliphaus-platform/app/services"
	testingutil "github.com/cliphaus/cliphaus-platform/testing"
	"github.com/cliphaus/cliphaus-platform/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFlowForTest(t *testing.T, adminRepo *fakeAdminRepo) AdminAuthFlow {
	t.Helper()
	tokenService, err := services.NewTokenService(
		time.Hour, 24*time.Hour,
		"cliphaus", "cliphaus-api",
		false, "", "",
		"test-secret-key-at-least-32-bytes-long",
	)
	require.NoError(t, err)
	return NewAdminAuthFlow(adminRepo, newFakeAuditRepo(), tokenService)
}

func TestAdminLogin(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("SuccessIssuesTokenPair", func(t *testing.T) {
		admin, err := testingutil.NewTestAdmin(1, "ops", "correct-horse-battery")
		require.NoError(t, err)
		adminRepo := newFakeAdminRepo(admin)
		flow := newAuthFlowForTest(t, adminRepo)

		resp, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ops",
			Password: "correct-horse-battery",
		}, metadata)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "Bearer", resp.TokenType)
		assert.Equal(t, int(utils.AccessTokenTTL.Seconds()), resp.ExpiresIn)
		assert.NotNil(t, admin.LastLoginAt)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		flow := newAuthFlowForTest(t, newFakeAdminRepo())

		_, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ghost",
			Password: "whatever-password",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsAdminNotFound(err))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		admin, err := testingutil.NewTestAdmin(1, "ops", "correct-horse-battery")
		require.NoError(t, err)
		flow := newAuthFlowForTest(t, newFakeAdminRepo(admin))

		_, err = flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ops",
			Password: "wrong-password",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsIncorrectPassword(err))
		assert.Nil(t, admin.LastLoginAt)
	})

	t.Run("InactiveAccount", func(t *testing.T) {
		admin, err := testingutil.NewTestAdmin(1, "ops", "correct-horse-battery")
		require.NoError(t, err)
		admin.IsActive = utils.ToPtr(false)
		flow := newAuthFlowForTest(t, newFakeAdminRepo(admin))

		_, err = flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ops",
			Password: "correct-horse-battery",
		}, metadata)
		require.Error(t, err)
		assert.True(t, IsAccountInactive(err))
	})
}

func TestAdminRefresh(t *testing.T) {
	metadata := NewClientMetadata("127.0.0.1", "test-agent")

	t.Run("RoundTrip", func(t *testing.T) {
		admin, err := testingutil.NewTestAdmin(1, "ops", "correct-horse-battery")
		require.NoError(t, err)
		flow := newAuthFlowForTest(t, newFakeAdminRepo(admin))

		login, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ops",
			Password: "correct-horse-battery",
		}, metadata)
		require.NoError(t, err)

		refreshed, err := flow.Refresh(context.Background(), login.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEmpty(t, refreshed.RefreshToken)
		assert.Equal(t, "Bearer", refreshed.TokenType)
	})

	t.Run("EmptyToken", func(t *testing.T) {
		flow := newAuthFlowForTest(t, newFakeAdminRepo())

		_, err := flow.Refresh(context.Background(), "")
		require.Error(t, err)
	})

	t.Run("AccessTokenIsNotAcceptable", func(t *testing.T) {
		admin, err := testingutil.NewTestAdmin(1, "ops", "correct-horse-battery")
		require.NoError(t, err)
		flow := newAuthFlowForTest(t, newFakeAdminRepo(admin))

		login, err := flow.Login(context.Background(), &dto.AdminLoginRequest{
			Username: "ops",
			Password: "correct-horse-battery",
		}, metadata)
		require.NoError(t, err)

		_, err = flow.Refresh(context.Background(), login.AccessToken)
		require.Error(t, err)
	})
}
