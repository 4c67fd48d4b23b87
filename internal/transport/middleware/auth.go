package middleware

import (
	"net/http"
	"strings"

	"github.com/wordwiseapp/wordwise-backend/pkg/ctxutil"
)

// TokenValidator checks an access token and returns the account ID it
// was issued for.
type TokenValidator interface {
	ValidateAccessToken(token string) (int64, error)
}

// Auth returns middleware that validates a bearer token and stores the
// account ID in the context. Requests without a token pass through
// anonymously; protected handlers reject them via ErrUnauthorized.
func Auth(validator TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			accountID, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithAccountID(r.Context(), accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}
