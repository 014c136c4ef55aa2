package auth

import (
	"errors"
	"time"

	"github.com/arzan03/newsroom/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a session token stays valid. Tokens are not
// revocable before they expire.
const DefaultSessionTTL = 5 * time.Hour

var ErrTokenInvalid = errors.New("token is not valid")

// Identity is the authenticated principal carried inside a session token.
type Identity struct {
	ID   string      `json:"id"`
	Role models.Role `json:"role"`
}

// Claims is the signed session payload: {user: {id, role}} plus expiry.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer signs with secret; a zero ttl means DefaultSessionTTL.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for id that expires after the issuer's TTL.
func (i *TokenIssuer) Issue(id Identity) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		User: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded identity.
func (i *TokenIssuer) Verify(tokenString string) (*Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(ErrTokenInvalid, err)
	}
	if !token.Valid || claims.User.ID == "" {
		return nil, ErrTokenInvalid
	}
	return &claims.User, nil
}
