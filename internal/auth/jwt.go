package auth

import (
	"fmt"
	"time"

	"propertyhub/internal/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of an issued token
const TokenTTL = 7 * 24 * time.Hour

const (
	msgTokenMissing = "Access token required. Please login first."
	msgTokenInvalid = "Invalid or expired token. Please login again."
)

// Claims identifies the user a token was issued to
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 bearer tokens. It holds no per-session state.
type TokenManager struct {
	secretKey []byte
	now       func() time.Time
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

// Generate issues a token for the user and returns it with its expiry time
func (m *TokenManager) Generate(userID, email string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(TokenTTL)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the token signature and expiry as of now. An empty token is
// Unauthorized; any other failure is Forbidden.
func (m *TokenManager) Verify(tokenString string, now time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, apperr.Unauthorized(msgTokenMissing)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindForbidden, Message: msgTokenInvalid, Err: err}
	}
	if !token.Valid || claims.UserID == "" {
		return nil, apperr.Forbidden(msgTokenInvalid)
	}

	return claims, nil
}
