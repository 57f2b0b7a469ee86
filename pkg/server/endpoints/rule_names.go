package endpoints

import (
	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// RegisterRuleNameEndpoints registers CRUD routes for rule definitions.
func RegisterRuleNameEndpoints(s *server.Server) {
	RegisterCrudEndpoints(s, EntityDef[model.RuleName]{
		Kind:  store.KindRuleName,
		ID:    func(rn *model.RuleName) uint { return rn.ID },
		SetID: func(rn *model.RuleName, id uint) { rn.ID = id },
	}, s.Stores.RuleNames)
}
