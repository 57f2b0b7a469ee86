package model

import "time"

// CurvePoint is a single point on a yield curve as of a given date.
type CurvePoint struct {
	ID           uint       `gorm:"column:id;primaryKey" json:"id"`
	CurveID      *uint8     `gorm:"column:curve_id" json:"curve_id" validate:"required,min=1"`
	AsOfDate     *time.Time `gorm:"column:as_of_date" json:"as_of_date" validate:"required"`
	Term         *float64   `gorm:"column:term" json:"term" validate:"required,gte=0"`
	Value        *float64   `gorm:"column:value" json:"value" validate:"required"`
	CreationDate *time.Time `gorm:"column:creation_date" json:"creation_date" validate:"required"`
}

func (CurvePoint) TableName() string {
	return "curve_points"
}
