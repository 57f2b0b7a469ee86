package gorm

import (
	"errors"

	"gorm.io/gorm"

	"github.com/poseidoncap/refdata/pkg/model"
	"github.com/poseidoncap/refdata/pkg/server/store"
)

// Ensure CrudStore satisfies store.Crud for each entity type
var (
	_ store.Crud[model.Bid]        = (*CrudStore[model.Bid])(nil)
	_ store.Crud[model.CurvePoint] = (*CrudStore[model.CurvePoint])(nil)
	_ store.Crud[model.Rating]     = (*CrudStore[model.Rating])(nil)
	_ store.Crud[model.RuleName]   = (*CrudStore[model.RuleName])(nil)
	_ store.Crud[model.Trade]      = (*CrudStore[model.Trade])(nil)
)

// CrudStore implements store.Crud using GORM. One instantiation per
// entity type replaces the per-entity repositories.
type CrudStore[E any] struct {
	db *gorm.DB
}

// NewCrudStore creates a new CrudStore for the entity type E
func NewCrudStore[E any](db *gorm.DB) *CrudStore[E] {
	return &CrudStore[E]{db: db}
}

// Create persists a new record and fills in its assigned id
func (s *CrudStore[E]) Create(entity *E) error {
	return s.db.Create(entity).Error
}

// Get retrieves a record by primary key
func (s *CrudStore[E]) Get(id uint) (*E, error) {
	var entity E
	err := s.db.First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns up to limit records ordered by id
func (s *CrudStore[E]) List(limit int) ([]E, error) {
	entities := make([]E, 0)
	tx := s.db.Order("id")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Update overwrites the full record
func (s *CrudStore[E]) Update(entity *E) error {
	res := s.db.Save(entity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Delete removes a record by primary key
func (s *CrudStore[E]) Delete(id uint) error {
	res := s.db.Delete(new(E), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
