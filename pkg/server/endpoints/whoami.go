package endpoints

import (
	"net/http"
	"time"

	"github.com/poseidoncap/refdata/pkg/identity"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/middleware"
)

// WhoamiResponse represents the response from the /whoami endpoint
type WhoamiResponse struct {
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	ClientIP  string    `json:"client_ip,omitempty"`
	ExpiresAt time.Time `json:"token_expires_at"`
}

// RegisterWhoamiEndpoint registers the /whoami endpoint
func RegisterWhoamiEndpoint(s *server.Server) {
	auth := middleware.NewTokenAuthenticator(s.Tokens)

	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(auth.Middleware)

	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			http.Error(w, "Unable to determine identity", http.StatusUnauthorized)
			return
		}

		response := WhoamiResponse{
			Username:  id.Username,
			Roles:     id.Roles,
			ExpiresAt: id.ExpiresAt,
		}
		if id.RemoteIP != nil {
			response.ClientIP = id.RemoteIP.String()
		}

		respondWithJSON(w, http.StatusOK, response)
	}
}
