package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterBidEndpoints(srv)
	RegisterCurvePointEndpoints(srv)
	RegisterRatingEndpoints(srv)
	RegisterRuleNameEndpoints(srv)
	RegisterTradeEndpoints(srv)
	RegisterUserEndpoints(srv)
	RegisterLoginEndpoints(srv)
	RegisterWhoamiEndpoint(srv)
	RegisterStatusEndpoints(srv)
}
