package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkPurchased(t *testing.T) {
	now := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	item := &ShoppingItem{}

	item.MarkPurchased(true, now)
	assert.True(t, item.IsPurchased)
	if assert.NotNil(t, item.PurchasedDate) {
		assert.Equal(t, now, *item.PurchasedDate)
	}

	// marking again keeps the original date
	item.MarkPurchased(true, now.Add(time.Hour))
	assert.Equal(t, now, *item.PurchasedDate)

	item.MarkPurchased(false, now)
	assert.False(t, item.IsPurchased)
	assert.Nil(t, item.PurchasedDate)
}

func TestMealTypeValid(t *testing.T) {
	for _, mt := range MealTypes {
		assert.True(t, mt.Valid(), mt)
	}
	assert.False(t, MealType("snack").Valid())
	assert.False(t, MealType("").Valid())
}

func TestDateOf(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	d := DateOf(time.Date(2025, 4, 14, 23, 30, 0, 0, jst))
	assert.Equal(t, time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), time.Time(d))
}
