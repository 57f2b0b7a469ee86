package middleware

import (
	"net/http"

	"github.com/poseidoncap/refdata/pkg/identity"
)

// RequireRole wraps a handler and rejects callers that hold none of the
// given roles. It must run after the token authenticator.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := identity.Get(r.Context())
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Authorization missing"))
				return
			}

			for _, role := range roles {
				if id.HasRole(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("Insufficient role"))
		})
	}
}
