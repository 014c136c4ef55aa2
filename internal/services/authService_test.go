package services

import (
	"context"
	"testing"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults role to Client and signs in", func(t *testing.T) {
		f := newAuthFixture(t)
		session, err := f.auth.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleClient, session.User.Role)
		assert.Equal(t, "ann@example.com", session.User.Email)

		identity, err := f.tokens.Verify(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.User.ID, identity.ID)
		assert.Equal(t, models.RoleClient, identity.Role)

		stored, err := f.users.FindByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "secret", stored.Password)
	})

	t.Run("keeps requested role", func(t *testing.T) {
		f := newAuthFixture(t)
		session, err := f.auth.Register(ctx, RegisterInput{Name: "Ed", Email: "ed@example.com", Password: "pw", Role: "Employee"})
		require.NoError(t, err)
		assert.Equal(t, models.RoleEmployee, session.User.Role)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAuthFixture(t)
		for _, in := range []RegisterInput{
			{Email: "a@b.co", Password: "pw"},
			{Name: "A", Password: "pw"},
			{Name: "A", Email: "a@b.co"},
			{Name: "   ", Email: "a@b.co", Password: "pw"},
		} {
			_, err := f.auth.Register(ctx, in)
			assert.ErrorIs(t, err, models.ErrValidation)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@b.co", Password: "pw", Role: "Root"})
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("duplicate email creates no second user", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "dup@example.com", Password: "pw"})
		require.NoError(t, err)

		_, err = f.auth.Register(ctx, RegisterInput{Name: "B", Email: "dup@example.com", Password: "other"})
		assert.ErrorIs(t, err, models.ErrEmailExists)

		users, err := f.users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	_, err := f.auth.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := f.auth.Login(ctx, "ann@example.com", "secret")
		require.NoError(t, err)
		_, err = f.tokens.Verify(session.Token)
		assert.NoError(t, err)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		_, errUnknown := f.auth.Login(ctx, "nobody@example.com", "secret")
		_, errWrong := f.auth.Login(ctx, "ann@example.com", "wrong")
		require.ErrorIs(t, errUnknown, models.ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, models.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "", "secret")
		assert.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("suspended user", func(t *testing.T) {
		user, err := f.users.FindByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		_, err = f.users.SetSuspended(ctx, user.ID, true, f.clock.Now())
		require.NoError(t, err)

		_, err = f.auth.Login(ctx, "ann@example.com", "secret")
		assert.ErrorIs(t, err, models.ErrUserSuspended)

		_, err = f.auth.Login(ctx, "ann@example.com", "wrong")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials, "suspension is not revealed without the password")
	})
}

func TestMeAndChangePassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	session, err := f.auth.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret"})
	require.NoError(t, err)

	me, err := f.auth.Me(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", me.Name)

	_, err = f.auth.Me(ctx, "not-an-id")
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = f.auth.ChangePassword(ctx, session.User.ID, "wrong", "next")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	require.NoError(t, f.auth.ChangePassword(ctx, session.User.ID, "secret", "next"))
	_, err = f.auth.Login(ctx, "ann@example.com", "secret")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, "ann@example.com", "next")
	assert.NoError(t, err)
}
