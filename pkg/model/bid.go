package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is a bid/ask quote record.
type Bid struct {
	ID           uint                `gorm:"column:id;primaryKey" json:"id"`
	Account      string              `gorm:"column:account" json:"account" validate:"required,max=50"`
	BidType      string              `gorm:"column:bid_type" json:"bid_type" validate:"required,max=20"`
	BidQuantity  decimal.NullDecimal `gorm:"column:bid_quantity;type:numeric" json:"bid_quantity" validate:"omitempty,gte=0"`
	AskQuantity  decimal.NullDecimal `gorm:"column:ask_quantity;type:numeric" json:"ask_quantity" validate:"omitempty,gte=0"`
	Bid          decimal.NullDecimal `gorm:"column:bid;type:numeric" json:"bid" validate:"omitempty,gte=0"`
	Ask          decimal.NullDecimal `gorm:"column:ask;type:numeric" json:"ask" validate:"omitempty,gte=0"`
	Benchmark    string              `gorm:"column:benchmark" json:"benchmark" validate:"max=100"`
	BidDate      *time.Time          `gorm:"column:bid_date" json:"bid_date"`
	Commentary   string              `gorm:"column:commentary" json:"commentary" validate:"max=250"`
	Security     string              `gorm:"column:security" json:"security" validate:"max=100"`
	Status       string              `gorm:"column:status" json:"status" validate:"max=20"`
	Trader       string              `gorm:"column:trader" json:"trader" validate:"max=50"`
	Book         string              `gorm:"column:book" json:"book" validate:"max=50"`
	CreationName string              `gorm:"column:creation_name" json:"creation_name" validate:"max=50"`
	CreationDate *time.Time          `gorm:"column:creation_date" json:"creation_date"`
	RevisionName string              `gorm:"column:revision_name" json:"revision_name" validate:"max=50"`
	RevisionDate *time.Time          `gorm:"column:revision_date" json:"revision_date"`
	DealName     string              `gorm:"column:deal_name" json:"deal_name" validate:"max=50"`
	DealType     string              `gorm:"column:deal_type" json:"deal_type" validate:"max=20"`
	SourceListID string              `gorm:"column:source_list_id" json:"source_list_id" validate:"max=50"`
	Side         string              `gorm:"column:side" json:"side" validate:"max=10"`
}

func (Bid) TableName() string {
	return "bids"
}
