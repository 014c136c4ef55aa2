package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("wrong horse", hash))
	assert.False(t, CheckPassword("correct horse", "not-a-bcrypt-hash"))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("pw", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("super-secret", time.Hour)
	tok, err := issuer.Issue(Identity{ID: "user-123", Role: models.RoleAdmin})
	require.NoError(t, err)

	id, err := issuer.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", id.ID)
	assert.Equal(t, models.RoleAdmin, id.Role)
}

func TestTokenIssuer_PayloadShape(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", 0)
	tok, err := issuer.Issue(Identity{ID: "u1", Role: models.RoleClient})
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, claims)
	require.NoError(t, err)

	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok, "token must carry a user object")
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "Client", user["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	iat, err := claims.GetIssuedAt()
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionTTL, exp.Sub(iat.Time))
}

func TestTokenIssuer_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("secret", time.Hour)
	tok, err := issuer.Issue(Identity{ID: "u1", Role: models.RoleClient})
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Verify(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenInvalid))
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer("right-secret", time.Hour).Issue(Identity{ID: "u2"})
	require.NoError(t, err)

	_, err = NewTokenIssuer("wrong-secret", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Malformed(t *testing.T) {
	t.Parallel()

	_, err := NewTokenIssuer("k", time.Hour).Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		User: Identity{ID: "u3"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = NewTokenIssuer("k", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestNewResetToken(t *testing.T) {
	raw, hash, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, 2*resetTokenBytes)
	assert.NotEqual(t, raw, hash)
	assert.Equal(t, hash, HashResetToken(raw), "hash must be deterministic")

	raw2, hash2, err := NewResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, raw, raw2)
	assert.NotEqual(t, hash, hash2)
}
