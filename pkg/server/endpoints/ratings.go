package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// RegisterRatingEndpoints registers CRUD routes for agency ratings.
func RegisterRatingEndpoints(s *server.Server) {
	RegisterCrudEndpoints(s, EntityDef[model.Rating]{
		Kind:  store.KindRating,
		ID:    func(rt *model.Rating) uint { return rt.ID },
		SetID: func(rt *model.Rating, id uint) { rt.ID = id },
	}, s.Stores.Ratings)
}
