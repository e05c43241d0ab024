package repository

import (
	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShoppingRepository interface {
	Create(item *models.ShoppingItem) (*models.ShoppingItem, error)
	// FindAll filters on is_purchased when isPurchased is non-nil
	FindAll(isPurchased *bool) ([]*models.ShoppingItem, error)
	FindByID(id uuid.UUID) (*models.ShoppingItem, error)
	Update(item *models.ShoppingItem) error
	Delete(id uuid.UUID) error
}

type shoppingRepo struct {
	db *gorm.DB
}

func NewShoppingRepo(db *gorm.DB) ShoppingRepository {
	return &shoppingRepo{db: db}
}

func (r *shoppingRepo) Create(item *models.ShoppingItem) (*models.ShoppingItem, error) {
	if err := r.db.Omit(clause.Associations).Create(item).Error; err != nil {
		return nil, translateError(err)
	}
	return item, nil
}

func (r *shoppingRepo) FindAll(isPurchased *bool) ([]*models.ShoppingItem, error) {
	q := r.db.Preload("Ingredient")
	if isPurchased != nil {
		q = q.Where("is_purchased = ?", *isPurchased)
	}

	var items []*models.ShoppingItem
	err := q.Order("created_at").Find(&items).Error
	return items, translateError(err)
}

func (r *shoppingRepo) FindByID(id uuid.UUID) (*models.ShoppingItem, error) {
	var item models.ShoppingItem
	if err := r.db.Preload("Ingredient").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, translateError(err)
	}
	return &item, nil
}

func (r *shoppingRepo) Update(item *models.ShoppingItem) error {
	return translateError(r.db.Omit(clause.Associations).Save(item).Error)
}

func (r *shoppingRepo) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.ShoppingItem{})
	return notFoundIfNone(result, "shopping item "+id.String())
}
