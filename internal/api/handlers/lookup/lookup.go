// Package lookup 成分查表 API
package lookup

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"ingredient-analyzer/internal/api/handlers"
	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/pkg/common"
)

// MisleadingItem 誤導性商品
type MisleadingItem struct {
	Name string `json:"name"`
	ingredient.MisleadingProduct
}

// Handler 查表處理器
type Handler struct {
	table *ingredient.Table
}

// NewHandler 創建查表處理器
func NewHandler(table *ingredient.Table) *Handler {
	if table == nil {
		table = ingredient.DefaultTable
	}
	return &Handler{table: table}
}

// Lookup GET /ingredients/lookup?name=
func (h *Handler) Lookup(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		handlers.BadRequest(c, fmt.Errorf("query parameter name is required"))
		return
	}

	match, ok := h.table.Lookup(name)
	if !ok {
		handlers.RespondError(c, common.ErrIngredientUnknown.Wrap(fmt.Errorf("%q is not in the lookup table", name)))
		return
	}
	c.JSON(http.StatusOK, match)
}

// Tips GET /ingredients/tips
func (h *Handler) Tips(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tips": h.table.Tips()})
}

// Misleading GET /ingredients/misleading，依名稱排序
func (h *Handler) Misleading(c *gin.Context) {
	products := h.table.MisleadingProducts()
	items := make([]MisleadingItem, 0, len(products))
	for name, p := range products {
		items = append(items, MisleadingItem{Name: name, MisleadingProduct: p})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	c.JSON(http.StatusOK, gin.H{"products": items})
}

// Stats GET /ingredients/stats
func (h *Handler) Stats(c *gin.Context) {
	sizes := make(map[string]int)
	for category, n := range h.table.Size() {
		sizes[category.String()] = n
	}
	c.JSON(http.StatusOK, gin.H{"tiers": sizes})
}
