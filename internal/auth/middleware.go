package auth

import (
	"context"
	"net/http"
	"strings"

	"event-manager/internal/utils"
)

type contextKey string

const (
	userIDKey contextKey = "user_id"
	roleKey   contextKey = "role"
	jtiKey    contextKey = "jti"
)

// Sessions is the part of the session store the middleware needs.
type Sessions interface {
	Exists(ctx context.Context, jti string) (bool, error)
}

// Middleware verifies the Bearer token, checks the session is still
// live, and puts the caller's identity into the request context.
func Middleware(secret string, sessions Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.Error(w, http.StatusUnauthorized, "Missing Authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.Error(w, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := ParseToken(secret, parts[1])
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if sessions != nil {
				live, err := sessions.Exists(r.Context(), claims.ID)
				if err != nil || !live {
					utils.Error(w, http.StatusUnauthorized, "Session has been revoked")
					return
				}
			}

			userID, err := claims.UserID()
			if err != nil {
				utils.Error(w, http.StatusUnauthorized, "Invalid token subject")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			ctx = context.WithValue(ctx, jtiKey, claims.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated account id, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Role returns the authenticated account type ("organizer"/"attendee").
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}

// JTI returns the session id of the presented token.
func JTI(ctx context.Context) string {
	if jti, ok := ctx.Value(jtiKey).(string); ok {
		return jti
	}
	return ""
}

// IsCaller reports whether the authenticated caller is exactly the
// account (role, id). Handlers use it to refuse requests that embed
// someone else's identity.
func IsCaller(ctx context.Context, role string, id int64) bool {
	userID, ok := UserID(ctx)
	return ok && userID == id && Role(ctx) == role
}
