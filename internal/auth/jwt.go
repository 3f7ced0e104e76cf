package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthenticated is returned for every token validation failure. The
// verifier deliberately does not report whether the signature, algorithm,
// expiry or claims were at fault.
var ErrUnauthenticated = errors.New("could not validate credentials")

// Claims defines the JWT claims structure. The subject is the account email;
// the role claim is informational for clients, the guard authorizes from the
// stored account.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints signed, time-bounded access tokens. Nothing is persisted;
// expiry is the only termination mechanism for a token.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenIssuer creates a TokenIssuer for the given HMAC signing algorithm
// identifier (e.g. "HS256").
func NewTokenIssuer(secret, algorithm string, ttl time.Duration) (*TokenIssuer, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	return &TokenIssuer{secret: []byte(secret), method: method, ttl: ttl}, nil
}

// Issue creates a new signed token asserting the subject email and role.
func (i *TokenIssuer) Issue(email, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(i.method, claims)
	return token.SignedString(i.secret)
}

// TokenVerifier parses and validates signed tokens.
type TokenVerifier struct {
	secret    []byte
	algorithm string
}

// NewTokenVerifier creates a TokenVerifier bound to one secret and one exact
// signing algorithm.
func NewTokenVerifier(secret, algorithm string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), algorithm: algorithm}
}

// Verify checks the signature, algorithm and expiry of a token string. Any
// failure, including a missing subject claim, yields ErrUnauthenticated.
func (v *TokenVerifier) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{v.algorithm}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}
