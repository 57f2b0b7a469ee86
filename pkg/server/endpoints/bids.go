package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// RegisterBidEndpoints registers CRUD routes for bid records.
func RegisterBidEndpoints(s *server.Server) {
	RegisterCrudEndpoints(s, EntityDef[model.Bid]{
		Kind:  store.KindBid,
		ID:    func(b *model.Bid) uint { return b.ID },
		SetID: func(b *model.Bid, id uint) { b.ID = id },
	}, s.Stores.Bids)
}
