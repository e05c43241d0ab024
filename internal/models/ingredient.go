package models

type Ingredient struct {
	Base
	Name     string `gorm:"type:varchar(255);not null;index" json:"name"`
	Category string `gorm:"type:varchar(100)" json:"category"` // vegetables, meat, seafood, ...
	Unit     string `gorm:"type:varchar(50)" json:"unit"`      // canonical unit: g, ml, 個, ...
}
