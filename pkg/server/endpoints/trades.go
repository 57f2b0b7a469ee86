package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// RegisterTradeEndpoints registers CRUD routes for trades.
func RegisterTradeEndpoints(s *server.Server) {
	RegisterCrudEndpoints(s, EntityDef[model.Trade]{
		Kind:  store.KindTrade,
		ID:    func(tr *model.Trade) uint { return tr.ID },
		SetID: func(tr *model.Trade, id uint) { tr.ID = id },
	}, s.Stores.Trades)
}
