package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// RegisterCurvePointEndpoints registers CRUD routes for curve points.
func RegisterCurvePointEndpoints(s *server.Server) {
	RegisterCrudEndpoints(s, EntityDef[model.CurvePoint]{
		Kind:  store.KindCurvePoint,
		ID:    func(c *model.CurvePoint) uint { return c.ID },
		SetID: func(c *model.CurvePoint, id uint) { c.ID = id },
	}, s.Stores.CurvePoints)
}
