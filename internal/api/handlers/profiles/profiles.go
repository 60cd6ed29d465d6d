// Package profiles 過敏清單 API
package profiles

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/api/handlers"
	"ingredient-analyzer/internal/core/profile"
	"ingredient-analyzer/internal/pkg/common"
)

// AllergiesRequest 覆寫過敏清單
type AllergiesRequest struct {
	Allergies []string `json:"allergies"`
}

// AllergiesResponse 過敏清單
type AllergiesResponse struct {
	UserID    string   `json:"user_id"`
	Allergies []string `json:"allergies"`
}

// Handler 過敏清單處理器
type Handler struct {
	store profile.Store
}

// NewHandler 創建過敏清單處理器
func NewHandler(store profile.Store) *Handler {
	return &Handler{store: store}
}

// Get GET /profiles/:user_id/allergies
func (h *Handler) Get(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	allergies, err := h.store.Get(c.Request.Context(), userID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, AllergiesResponse{UserID: userID, Allergies: allergies})
}

// Put PUT /profiles/:user_id/allergies
func (h *Handler) Put(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}

	var req AllergiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	saved, err := h.store.Put(c.Request.Context(), userID, req.Allergies)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("過敏清單已更新",
		zap.String("request_id", handlers.RequestID(c)),
		zap.Int("allergies", len(saved)),
	)
	c.JSON(http.StatusOK, AllergiesResponse{UserID: userID, Allergies: saved})
}

func userIDParam(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.Param("user_id"))
	if userID == "" {
		handlers.BadRequest(c, fmt.Errorf("user_id is required"))
		return "", false
	}
	return userID, true
}
