package model

// RuleName is a named business rule with its template and SQL fragments.
type RuleName struct {
	ID          uint   `gorm:"column:id;primaryKey" json:"id"`
	Name        string `gorm:"column:name" json:"name" validate:"required,max=100"`
	Description string `gorm:"column:description" json:"description" validate:"max=500"`
	JSON        string `gorm:"column:json" json:"json" validate:"max=1000"`
	Template    string `gorm:"column:template" json:"template" validate:"max=500"`
	SQLStr      string `gorm:"column:sql_str" json:"sql_str" validate:"max=1000"`
	SQLPart     string `gorm:"column:sql_part" json:"sql_part" validate:"max=500"`
}

func (RuleName) TableName() string {
	return "rule_names"
}
