package middleware

import (
	"net/http"
	"strings"

	"github.com/jqhoogland/open-dictionary/internal/auth"
	"github.com/jqhoogland/open-dictionary/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(token string) (auth.Claims, error)
}

// Auth attaches the subject and role of a valid bearer token to the request
// context. Requests without a token pass through anonymously; requests with
// an invalid one are rejected.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx := ctxutil.WithSubject(r.Context(), claims.Subject)
			ctx = ctxutil.WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
