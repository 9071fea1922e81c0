package security

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cp_tracker/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const userIDClaim = "user_id"

// TokenIssuer signs and verifies HS256 bearer tokens. Verification is
// stateless: a token stays valid until it expires, even if its user is
// removed, and there is no server-side revocation.
type TokenIssuer struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

// JWTAuth exposes the underlying signer for jwtauth.Verify.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

// Issue returns a token carrying userID that expires after the configured TTL.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("security: empty user id")
	}
	now := t.now()
	claims := jwt.MapClaims{
		userIDClaim: userID,
		"exp":       now.Add(t.ttl).Unix(),
		"iat":       now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry and returns the embedded user id.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", common.ErrUnauthorized
	}
	token, err := jwtauth.VerifyToken(t.auth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	userID, err := GetUserIDFromClaims(token.PrivateClaims())
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	return userID, nil
}

// TokenFromAuthorizationHeader reads the token from the Authorization
// header. Both "Bearer <token>" and a bare "<token>" are accepted.
func TokenFromAuthorizationHeader(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims[userIDClaim].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}
