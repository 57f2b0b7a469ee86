package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a buy/sell record against an account.
type Trade struct {
	ID           uint                `gorm:"column:id;primaryKey" json:"id"`
	Account      string              `gorm:"column:account" json:"account" validate:"required,max=100"`
	AccountType  string              `gorm:"column:account_type" json:"account_type" validate:"required,max=50"`
	BuyQuantity  decimal.NullDecimal `gorm:"column:buy_quantity;type:numeric" json:"buy_quantity" validate:"omitempty,gte=0"`
	SellQuantity decimal.NullDecimal `gorm:"column:sell_quantity;type:numeric" json:"sell_quantity" validate:"omitempty,gte=0"`
	BuyPrice     decimal.NullDecimal `gorm:"column:buy_price;type:numeric" json:"buy_price" validate:"omitempty,gte=0"`
	SellPrice    decimal.NullDecimal `gorm:"column:sell_price;type:numeric" json:"sell_price" validate:"omitempty,gte=0"`
	TradeDate    *time.Time          `gorm:"column:trade_date" json:"trade_date"`
	Security     string              `gorm:"column:security" json:"security" validate:"required,max=100"`
	Status       string              `gorm:"column:status" json:"status" validate:"required,max=50"`
	Trader       string              `gorm:"column:trader" json:"trader" validate:"required,max=100"`
	Benchmark    string              `gorm:"column:benchmark" json:"benchmark" validate:"max=100"`
	Book         string              `gorm:"column:book" json:"book" validate:"max=100"`
	CreationName string              `gorm:"column:creation_name" json:"creation_name" validate:"max=100"`
	CreationDate *time.Time          `gorm:"column:creation_date" json:"creation_date"`
	RevisionName string              `gorm:"column:revision_name" json:"revision_name" validate:"max=100"`
	RevisionDate *time.Time          `gorm:"column:revision_date" json:"revision_date"`
	DealName     string              `gorm:"column:deal_name" json:"deal_name" validate:"max=100"`
	DealType     string              `gorm:"column:deal_type" json:"deal_type" validate:"max=50"`
	SourceListID string              `gorm:"column:source_list_id" json:"source_list_id" validate:"max=100"`
	Side         string              `gorm:"column:side" json:"side" validate:"max=10"`
}

func (Trade) TableName() string {
	return "trades"
}
