package models

import (
	"time"

	"github.com/google/uuid"
)

// ShoppingItem - a row of the shopping list. Generated and hand-added
// items are stored the same way.
type ShoppingItem struct {
	Base
	IngredientID  uuid.UUID   `gorm:"type:uuid;not null;index" json:"ingredient_id"`
	Ingredient    *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity      float64     `gorm:"not null" json:"quantity"`
	IsPurchased   bool        `gorm:"not null;default:false;index" json:"is_purchased"`
	PurchasedDate *time.Time  `json:"purchased_date"`
}

// MarkPurchased keeps PurchasedDate in step with IsPurchased
func (s *ShoppingItem) MarkPurchased(purchased bool, now time.Time) {
	if purchased {
		if !s.IsPurchased || s.PurchasedDate == nil {
			s.PurchasedDate = &now
		}
	} else {
		s.PurchasedDate = nil
	}
	s.IsPurchased = purchased
}
