package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rina-hagihara0844/meal-planner/internal/service"
)

type generateRequest struct {
	Start string `json:"start"` // YYYY-MM-DD, defaults to today
	End   string `json:"end"`   // YYYY-MM-DD, defaults to start+6
}

type generateResponse struct {
	Lines  []service.AggregatedLine `json:"lines"`
	Result service.BulkResult       `json:"result"`
}

// ListShoppingItems - ?purchased=true|false filters, absent returns all
func (h *Handlers) ListShoppingItems(c *gin.Context) {
	var filter *bool
	if raw, ok := c.GetQuery("purchased"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "purchased must be true or false"})
			return
		}
		filter = &v
	}
	items, err := h.shopping.ListItems(filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handlers) CreateShoppingItem(c *gin.Context) {
	var input service.CreateShoppingItemDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.shopping.CreateItem(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handlers) UpdateShoppingItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var input service.UpdateShoppingItemDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.shopping.UpdateItem(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) ToggleShoppingItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	item, err := h.shopping.TogglePurchased(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handlers) DeleteShoppingItem(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.shopping.DeleteItem(id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearPurchased - 207 when only some deletes went through
func (h *Handlers) ClearPurchased(c *gin.Context) {
	result, err := h.shopping.ClearPurchased()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(bulkStatus(result), result)
}

func (h *Handlers) PreviewShoppingList(c *gin.Context) {
	start, end, err := h.generateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	lines, err := h.shopping.Preview(&start, &end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *Handlers) GenerateShoppingList(c *gin.Context) {
	var input generateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, err)
			return
		}
	}
	start, end, err := h.generateRange(input.Start, input.End)
	if err != nil {
		respondError(c, err)
		return
	}

	lines, result, err := h.shopping.GenerateAndAdd(&start, &end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(bulkStatus(result), generateResponse{Lines: lines, Result: result})
}

// generateRange fills missing bounds with the default week
func (h *Handlers) generateRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, end := service.WeekRange(h.now())
	from, to, err := service.ParseDateRange(rawStart, rawEnd)
	if err != nil {
		return start, end, err
	}
	if from != nil {
		start = *from
		end = start.AddDate(0, 0, 6)
	}
	if to != nil {
		end = *to
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("%w: end date is before start date", service.ErrValidation)
	}
	return start, end, nil
}

func bulkStatus(result service.BulkResult) int {
	if result.OK() {
		return http.StatusOK
	}
	return http.StatusMultiStatus
}
