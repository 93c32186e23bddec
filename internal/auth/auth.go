package auth

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenTTL is the lifetime of issued access tokens. There is no
// refresh and no revocation; outstanding tokens die only by expiry or
// by rotating the signing secret.
const TokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and a
	// missing subject claim.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrTokenExpired covers structurally valid tokens whose expiry has
	// passed. Both sentinels surface externally as a single 401.
	ErrTokenExpired = errors.New("auth: token expired")
)

// Verifier checks a submitted credential pair against the single
// configured admin identity. The comparison is constant-time so the
// response does not leak how much of the credential matched.
type Verifier struct {
	username []byte
	password []byte
}

func NewVerifier(username, password string) *Verifier {
	return &Verifier{username: []byte(username), password: []byte(password)}
}

// Verify never reveals whether the username or the password was wrong.
func (v *Verifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), v.username)
	passOK := subtle.ConstantTimeCompare([]byte(password), v.password)
	return userOK&passOK == 1
}

// TokenService issues and verifies HS256-signed bearer tokens carrying
// the admin identity as the subject claim. Tokens are stateless; no
// session record exists server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: TokenTTL}
}

func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "auth: sign token")
	}
	return signed, nil
}

// Verify returns the subject of a valid token. Expired tokens come back
// as ErrTokenExpired, everything else as ErrInvalidToken.
func (s *TokenService) Verify(tokenStr string) (string, error) {
	claims := new(jwt.RegisteredClaims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "", ErrTokenExpired
	case err != nil, !token.Valid:
		return "", ErrInvalidToken
	case claims.Subject == "":
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
