package middleware

import (
	"context"
	"errors"
	"net/http"

	"cp_tracker/internal/common"
	"cp_tracker/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

type contextKey string

const UserIDCtxKey contextKey = "userID"

// Verifier finds the token in the Authorization header and stores the
// verification result in the request context for Authenticator.
func Verifier(tokens *security.TokenIssuer) func(http.Handler) http.Handler {
	return jwtauth.Verify(tokens.JWTAuth(), security.TokenFromAuthorizationHeader)
}

// Authenticator rejects requests without a valid token: 401 when the header
// is missing, 400 when the token is malformed, badly signed or expired.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if errors.Is(err, jwtauth.ErrNoTokenFound) || (err == nil && token == nil) {
			common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			return
		}
		if err != nil {
			zap.L().Debug("token rejected", zap.Error(err))
			common.RespondWithError(w, http.StatusBadRequest, "Invalid or expired token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusBadRequest, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
