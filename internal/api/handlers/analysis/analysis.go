// Package analysis 成分標籤分析 API
package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/api/handlers"
	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/core/ocr"
	"ingredient-analyzer/internal/core/profile"
	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// TextRequest 以標籤文字分析
type TextRequest struct {
	Text      string   `json:"text"`
	Allergies []string `json:"allergies,omitempty"`
	UserID    string   `json:"user_id,omitempty"` // 有值時合併已儲存的過敏清單
}

// ImageRequest 以標籤圖片分析
type ImageRequest struct {
	Image     string   `json:"image" binding:"required"` // base64、data URI 或圖片網址
	Allergies []string `json:"allergies,omitempty"`
	UserID    string   `json:"user_id,omitempty"`
}

// ExtractRequest 只抽取成分清單
type ExtractRequest struct {
	Text string `json:"text"`
}

// Response 分析結果
type Response struct {
	RequestID     string `json:"request_id"`
	ExtractedText string `json:"extracted_text,omitempty"`
	ingredient.Report
}

// ExtractResponse 成分抽取結果
type ExtractResponse struct {
	RequestID   string                `json:"request_id"`
	Ingredients []string              `json:"ingredients"`
	Marker      string                `json:"marker,omitempty"`
	Confidence  ingredient.Confidence `json:"confidence"`
}

// Handler 分析處理器
type Handler struct {
	analyzer     *ingredient.Analyzer
	ocr          ocr.Extractor
	profiles     profile.Store
	maxTextBytes int
}

// NewHandler 創建分析處理器，extractor 為 nil 時停用圖片分析
func NewHandler(analyzer *ingredient.Analyzer, extractor ocr.Extractor, profiles profile.Store, maxTextBytes int) *Handler {
	return &Handler{
		analyzer:     analyzer,
		ocr:          extractor,
		profiles:     profiles,
		maxTextBytes: maxTextBytes,
	}
}

// AnalyzeText POST /analyze/text
func (h *Handler) AnalyzeText(c *gin.Context) {
	requestID := handlers.RequestID(c)

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	if err := h.checkTextSize(req.Text); err != nil {
		handlers.RespondError(c, err)
		return
	}

	allergies, err := h.resolveAllergies(c.Request.Context(), req.UserID, req.Allergies)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("開始分析標籤文字",
		zap.String("request_id", requestID),
		zap.Int("text_length", len(req.Text)),
		zap.Int("allergies", len(allergies)),
	)

	report := h.analyzer.AnalyzeText(c.Request.Context(), req.Text, allergies)
	observe("text", report)
	c.JSON(http.StatusOK, Response{RequestID: requestID, Report: report})
}

// AnalyzeImage POST /analyze/image
func (h *Handler) AnalyzeImage(c *gin.Context) {
	requestID := handlers.RequestID(c)

	if h.ocr == nil {
		handlers.RespondError(c, common.ErrOCRDisabled)
		return
	}

	var req ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	allergies, err := h.resolveAllergies(c.Request.Context(), req.UserID, req.Allergies)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	common.LogInfo("開始分析標籤圖片",
		zap.String("request_id", requestID),
		zap.String("provider", h.ocr.Name()),
		zap.Int("image_length", len(req.Image)),
	)

	text, err := h.ocr.ExtractText(c.Request.Context(), req.Image)
	if err != nil {
		var ocrErr *ocr.Error
		if errors.As(err, &ocrErr) {
			err = common.ErrOCRFailed.Wrap(err)
		}
		handlers.RespondError(c, err)
		return
	}

	report := h.analyzer.AnalyzeText(c.Request.Context(), text, allergies)
	observe("image", report)
	c.JSON(http.StatusOK, Response{RequestID: requestID, ExtractedText: text, Report: report})
}

// Extract POST /extract
func (h *Handler) Extract(c *gin.Context) {
	requestID := handlers.RequestID(c)

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	if err := h.checkTextSize(req.Text); err != nil {
		handlers.RespondError(c, err)
		return
	}

	extraction := ingredient.Extract(req.Text)
	c.JSON(http.StatusOK, ExtractResponse{
		RequestID:   requestID,
		Ingredients: extraction.Ingredients,
		Marker:      extraction.Marker,
		Confidence:  extraction.Confidence,
	})
}

func (h *Handler) checkTextSize(text string) error {
	if h.maxTextBytes > 0 && len(text) > h.maxTextBytes {
		return common.ErrInvalidRequest.Wrap(fmt.Errorf("text exceeds %d bytes", h.maxTextBytes))
	}
	return nil
}

// resolveAllergies 合併已儲存的過敏清單與本次請求帶入的清單
func (h *Handler) resolveAllergies(ctx context.Context, userID string, allergies []string) ([]string, error) {
	if userID == "" || h.profiles == nil {
		return allergies, nil
	}
	stored, err := h.profiles.Get(ctx, userID)
	if errors.Is(err, common.ErrProfileNotFound) {
		return allergies, nil
	}
	if err != nil {
		return nil, err
	}
	return append(stored, allergies...), nil
}

func observe(source string, report ingredient.Report) {
	metrics.AnalysesTotal.WithLabelValues(source, string(report.Status)).Inc()
	for _, r := range report.Results {
		metrics.ResultsTotal.WithLabelValues(r.Category.String()).Inc()
	}
}
