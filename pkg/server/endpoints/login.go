package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/poseidoncap/refdata/pkg/audit"
	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/middleware"
	"github.com/poseidoncap/refdata/pkg/token"
	"github.com/poseidoncap/refdata/pkg/validation"
)

// LoginRequest carries credentials for /login/login.
type LoginRequest struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberme"`
}

// LoginResponse is the issued token envelope.
type LoginResponse struct {
	Token     string    `json:"token"`
	Type      string    `json:"type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterLoginEndpoints registers /login/login and /login/logout.
func RegisterLoginEndpoints(s *server.Server) {
	auth := middleware.NewTokenAuthenticator(s.Tokens)

	s.Router.HandleFunc("/login/login", handleLogin(s.Identity, s.Tokens)).Methods("POST")

	logoutRouter := s.Router.PathPrefix("/login/logout").Subrouter()
	logoutRouter.Use(auth.Middleware)
	logoutRouter.HandleFunc("", handleLogout()).Methods("POST")
}

func handleLogin(provider identity.Provider, tokens *token.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		defer func() { _ = r.Body.Close() }()

		if errs := validation.Struct(req); errs != nil {
			respondWithValidationErrors(w, errs)
			return
		}

		user, err := provider.VerifyCredential(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, identity.ErrInvalidCredentials) {
				audit.Log(audit.AuthenticateEvent{
					Username:     req.Username,
					ClientIP:     clientIP(r),
					Success:      false,
					ErrorMessage: "invalid credentials",
				})
				respondWithError(w, http.StatusUnauthorized, "invalid username or password")
				return
			}
			respondWithInternalError(w, err)
			return
		}

		roles, err := provider.RolesOf(user.ID)
		if err != nil {
			respondWithInternalError(w, err)
			return
		}

		tokenStr, expiresAt, err := tokens.Issue(user.Username, roles, req.RememberMe)
		if err != nil {
			respondWithInternalError(w, err)
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Username: user.Username,
			ClientIP: clientIP(r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, LoginResponse{
			Token:     tokenStr,
			Type:      "Bearer",
			ExpiresAt: expiresAt,
		})
	}
}

// Tokens are stateless so logout only audits the intent. Clients drop
// the token; it remains valid until expiry.
func handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		audit.Log(audit.ResourceEvent{
			Username:  usernameFrom(r),
			ClientIP:  clientIP(r),
			Operation: "logout",
			Kind:      "session",
			Success:   true,
		})
		respondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}
