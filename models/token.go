package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/serr"
)

const (
	// TokenIssuer identifies the storefront as the issuer of session cookies
	TokenIssuer = "konvy-storefront"

	// MinSecretLength is the minimum acceptable length for the signing secret
	MinSecretLength = 32
)

// SessionTokens signs and validates the storefront session cookie. The cookie
// only carries the session ID; everything else lives in the session store.
type SessionTokens struct {
	secret []byte
	ttl    time.Duration
}

// SessionClaims extends the registered claims with the session ID.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// NewSessionTokens validates the secret length.
func NewSessionTokens(secret string, ttl time.Duration) (*SessionTokens, error) {
	if len(secret) < MinSecretLength {
		return nil, serr.New("session secret must be at least 32 characters")
	}
	return &SessionTokens{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed token for sessionID.
func (st *SessionTokens) Issue(sessionID string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(st.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		SessionID: sessionID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(st.secret)
	if err != nil {
		return "", serr.Wrap(err, "failed to sign session token")
	}
	return signed, nil
}

// Validate returns the session ID of a valid token.
func (st *SessionTokens) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, serr.New("unexpected signing method")
		}
		return st.secret, nil
	}, jwt.WithIssuer(TokenIssuer))
	if err != nil {
		return "", serr.Wrap(err, "failed to parse session token")
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", serr.New("invalid session token claims")
	}
	return claims.SessionID, nil
}
