package stub

import (
	"crypto/rand"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenValidity = 24 * time.Hour

// tokenClaims carries the account id inside the signed token.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string
}

func newTokenSecret() []byte {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	return secret
}

// issueToken signs a bearer token for the account. Tokens are stateless;
// restarting the stub invalidates them because the secret is per process.
func (s *Store) issueToken(userID string) (string, error) {
	// The jti makes every issued token distinct, so one can be revoked
	// without touching the account's other sessions.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenValidity)),
		},
		UserID: userID,
	})
	return token.SignedString(s.tokenSecret)
}

func (s *Store) userIDFromToken(tokenString string) (string, bool) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.tokenSecret, nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	return claims.UserID, true
}
