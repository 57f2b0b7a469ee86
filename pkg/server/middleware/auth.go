package middleware

import (
	"net"
	"net/http"
	"regexp"

	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/token"
)

var bearerRegex = regexp.MustCompile(`^Bearer (\S+)$`)

// TokenAuthenticator is middleware that validates bearer tokens.
type TokenAuthenticator struct {
	Tokens *token.Manager
}

// NewTokenAuthenticator creates a new bearer token authenticator middleware
func NewTokenAuthenticator(tokens *token.Manager) *TokenAuthenticator {
	return &TokenAuthenticator{Tokens: tokens}
}

// Middleware returns an HTTP middleware that validates bearer tokens
// and stores the caller's identity on the request context.
func (t *TokenAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")

		if len(authHeader) == 0 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		tokenMatches := bearerRegex.FindStringSubmatch(authHeader)

		if len(tokenMatches) != 2 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Malformed authorization header"))
			return
		}

		claims, err := t.Tokens.Verify(tokenMatches[1])
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid or expired token"))
			return
		}

		id := &identity.Identity{
			Username: claims.Subject,
			Roles:    claims.Roles,
		}
		if claims.IssuedAt != nil {
			id.IssuedAt = claims.IssuedAt.Time
		}
		if claims.ExpiresAt != nil {
			id.ExpiresAt = claims.ExpiresAt.Time
		}
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id.WithRemoteIP(net.ParseIP(host))
		}

		r = r.WithContext(identity.Set(r.Context(), id))

		next.ServeHTTP(w, r)
	})
}
