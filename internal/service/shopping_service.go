package service

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/internal/repository"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
)

type ShoppingService struct {
	repo      repository.ShoppingRepository
	generator *ShoppingListGenerator
	now       func() time.Time
}

func NewShoppingService(repo repository.ShoppingRepository, generator *ShoppingListGenerator) *ShoppingService {
	return &ShoppingService{
		repo:      repo,
		generator: generator,
		now:       time.Now,
	}
}

// RoundUpQuantity - shoppers buy whole units: 2.1 -> 3, 3.0 -> 3
func RoundUpQuantity(q float64) float64 {
	// float sums like 0.1*3 land a hair above the integer
	rounded := math.Ceil(q - 1e-9)
	if q > 0 && rounded < 1 {
		return 1
	}
	return rounded
}

// ListItems - isPurchased == nil returns every item
func (s *ShoppingService) ListItems(isPurchased *bool) ([]*models.ShoppingItem, error) {
	return s.repo.FindAll(isPurchased)
}

func (s *ShoppingService) GetItem(id uuid.UUID) (*models.ShoppingItem, error) {
	return s.repo.FindByID(id)
}

// CreateItem - добавить товар в список покупок вручную
func (s *ShoppingService) CreateItem(dto CreateShoppingItemDTO) (*models.ShoppingItem, error) {
	if dto.IngredientID == uuid.Nil {
		return nil, invalidf("ingredient_id is required")
	}
	if !ValidQuantity(dto.Quantity) {
		return nil, invalidf("quantity must be greater than 0 and at most %g", MaxQuantity)
	}

	item := &models.ShoppingItem{
		IngredientID: dto.IngredientID,
		Quantity:     dto.Quantity,
	}
	if _, err := s.repo.Create(item); err != nil {
		return nil, err
	}
	return s.repo.FindByID(item.ID)
}

// UpdateItem applies quantity and purchase state; purchased_date follows
// is_purchased
func (s *ShoppingService) UpdateItem(id uuid.UUID, dto UpdateShoppingItemDTO) (*models.ShoppingItem, error) {
	item, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if dto.Quantity != nil {
		if !ValidQuantity(*dto.Quantity) {
			return nil, invalidf("quantity must be greater than 0 and at most %g", MaxQuantity)
		}
		item.Quantity = *dto.Quantity
	}
	if dto.IsPurchased != nil {
		item.MarkPurchased(*dto.IsPurchased, s.now())
	}

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// TogglePurchased flips is_purchased
func (s *ShoppingService) TogglePurchased(id uuid.UUID) (*models.ShoppingItem, error) {
	item, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	item.MarkPurchased(!item.IsPurchased, s.now())
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ShoppingService) DeleteItem(id uuid.UUID) error {
	return s.repo.Delete(id)
}

// ClearPurchased deletes every purchased item, one call per item
func (s *ShoppingService) ClearPurchased() (BulkResult, error) {
	purchased := true
	items, err := s.repo.FindAll(&purchased)
	if err != nil {
		return BulkResult{}, err
	}

	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	result := runEach(ids, s.repo.Delete)
	if !result.OK() {
		utils.Log.Warnf("clear purchased: %d of %d deletes failed", len(result.Failed), len(ids))
	}
	return result, nil
}

// AddGenerated inserts one rounded-up item per line. Results are keyed by
// ingredient id.
func (s *ShoppingService) AddGenerated(lines []AggregatedLine) BulkResult {
	byIngredient := make(map[uuid.UUID]AggregatedLine, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, dup := byIngredient[line.IngredientID]; !dup {
			ids = append(ids, line.IngredientID)
		}
		byIngredient[line.IngredientID] = line
	}

	result := runEach(ids, func(ingredientID uuid.UUID) error {
		item := &models.ShoppingItem{
			IngredientID: ingredientID,
			Quantity:     RoundUpQuantity(byIngredient[ingredientID].Quantity),
		}
		_, err := s.repo.Create(item)
		return err
	})
	if !result.OK() {
		utils.Log.Warnf("add generated items: %d of %d inserts failed", len(result.Failed), len(ids))
	}
	return result
}

// GenerateAndAdd runs the generator for [start, end] and inserts what it
// returns. Nothing is inserted when generation fails.
func (s *ShoppingService) GenerateAndAdd(start, end *time.Time) ([]AggregatedLine, BulkResult, error) {
	lines, err := s.generator.Generate(start, end)
	if err != nil {
		return nil, BulkResult{}, err
	}
	return lines, s.AddGenerated(lines), nil
}

// Preview returns the generated lines with the quantities that would be
// inserted, without writing anything
func (s *ShoppingService) Preview(start, end *time.Time) ([]AggregatedLine, error) {
	lines, err := s.generator.Generate(start, end)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		lines[i].Quantity = RoundUpQuantity(lines[i].Quantity)
	}
	return lines, nil
}

// WeekRange - today through today+6, the default generation window
func WeekRange(now time.Time) (time.Time, time.Time) {
	start := time.Time(models.DateOf(now))
	return start, start.AddDate(0, 0, 6)
}
