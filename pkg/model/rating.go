package model

// Rating holds the agency credit ratings for one issuer.
type Rating struct {
	ID           uint   `gorm:"column:id;primaryKey" json:"id"`
	MoodysRating string `gorm:"column:moodys_rating" json:"moodys_rating" validate:"required"`
	SandPRating  string `gorm:"column:sandp_rating" json:"sandp_rating" validate:"required"`
	FitchRating  string `gorm:"column:fitch_rating" json:"fitch_rating" validate:"required"`
	OrderNumber  *uint8 `gorm:"column:order_number" json:"order_number" validate:"omitempty,max=100"`
}

func (Rating) TableName() string {
	return "ratings"
}
