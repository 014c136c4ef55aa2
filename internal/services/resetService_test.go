package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func registerAnn(t *testing.T, f *authFixture) {
	t.Helper()
	_, err := f.auth.Register(context.Background(), RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "old-password"})
	require.NoError(t, err)
}

func TestRequestReset_StoresHashAndMailsRawToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)

	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))

	msgs := f.notifier.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"ann@example.com"}, msgs[0].To)
	assert.Contains(t, msgs[0].Body, "http://localhost:3000/reset-password/")
	raw := rawTokenFrom(t, f.notifier)

	user, err := f.users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.NotNil(t, user.PasswordReset)
	assert.Equal(t, auth.HashResetToken(raw), user.PasswordReset.Hash)
	assert.NotContains(t, msgs[0].Body, user.PasswordReset.Hash)
	assert.Equal(t, f.clock.Now().Add(time.Hour), user.PasswordReset.ExpiresAt)
}

func TestRequestReset_UnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)
	require.NoError(t, f.reset.RequestReset(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.notifier.messages())
}

func TestRequestReset_NotificationFailureIsSwallowed(t *testing.T) {
	f := newAuthFixture(t)
	registerAnn(t, f)
	f.reset.notifier = failingNotifier{}

	require.NoError(t, f.reset.RequestReset(context.Background(), "ann@example.com"))
}

// lostWriteUsers finds users but never stores a reset on them.
type lostWriteUsers struct {
	UserStore
}

func (lostWriteUsers) SetPasswordReset(context.Context, primitive.ObjectID, models.PasswordReset, time.Time) error {
	return models.ErrNotFound
}

func TestRequestReset_LostWriteIsFatal(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)
	f.reset.users = lostWriteUsers{UserStore: f.users}

	err := f.reset.RequestReset(ctx, "ann@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.NotErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, f.notifier.messages(), "no link is mailed for a token that was not stored")

	assert.NoError(t, f.reset.RequestReset(ctx, "ghost@example.com"), "unknown emails stay silent")
}

func TestRedeemReset_SingleUse(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)
	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))
	raw := rawTokenFrom(t, f.notifier)

	require.NoError(t, f.reset.RedeemReset(ctx, raw, "new-password"))

	_, err := f.auth.Login(ctx, "ann@example.com", "new-password")
	require.NoError(t, err)
	_, err = f.auth.Login(ctx, "ann@example.com", "old-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	user, err := f.users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Nil(t, user.PasswordReset)

	err = f.reset.RedeemReset(ctx, raw, "another")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)
}

func TestRedeemReset_Expired(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)
	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))
	raw := rawTokenFrom(t, f.notifier)

	f.clock.Advance(time.Hour + time.Second)

	err := f.reset.RedeemReset(ctx, raw, "new-password")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)
	_, err = f.auth.Login(ctx, "ann@example.com", "old-password")
	assert.NoError(t, err)
}

func TestRedeemReset_WrongToken(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)
	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))
	raw := rawTokenFrom(t, f.notifier)

	err := f.reset.RedeemReset(ctx, strings.Repeat("0", len(raw)), "new-password")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	err = f.reset.RedeemReset(ctx, "", "new-password")
	assert.ErrorIs(t, err, models.ErrInvalidResetToken)

	err = f.reset.RedeemReset(ctx, raw, "")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestRequestReset_SecondRequestReplacesFirst(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	registerAnn(t, f)

	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))
	first := rawTokenFrom(t, f.notifier)
	require.NoError(t, f.reset.RequestReset(ctx, "ann@example.com"))
	second := rawTokenFrom(t, f.notifier)
	require.NotEqual(t, first, second)

	assert.ErrorIs(t, f.reset.RedeemReset(ctx, first, "pw"), models.ErrInvalidResetToken)
	assert.NoError(t, f.reset.RedeemReset(ctx, second, "pw"))
}
