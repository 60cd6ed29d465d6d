package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

// Completion 一次 chat completion 請求
type Completion struct {
	Model       string
	Prompt      string
	ImageData   string // data URI 或純 base64，空字串代表純文字
	MaxTokens   int
	Temperature float64
}

// OpenRouterService OpenRouter 服務
type OpenRouterService struct {
	config *config.Config
	client *resty.Client
}

// NewOpenRouterService 創建 OpenRouter 服務
func NewOpenRouterService(cfg *config.Config) *OpenRouterService {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.OpenRouter.BaseURL, "/")).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://ingredient-analyzer.app").
		SetHeader("X-Title", "Ingredient Analyzer")

	return &OpenRouterService{
		config: cfg,
		client: client,
	}
}

// GenerateResponse 生成回應
func (s *OpenRouterService) GenerateResponse(ctx context.Context, c Completion) (string, error) {
	if s.config.OpenRouter.APIKey == "" {
		return "", common.ErrAIServiceError.Wrap(fmt.Errorf("OPENROUTER_API_KEY is not set"))
	}

	msgContent := []map[string]interface{}{
		{
			"type": "text",
			"text": strings.TrimSpace(c.Prompt),
		},
	}
	if c.ImageData != "" {
		url := c.ImageData
		if !strings.HasPrefix(url, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", url)
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
	}

	model := c.Model
	if model == "" {
		model = s.config.OpenRouter.Model
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = s.config.OpenRouter.MaxTokens
	}

	// 構建請求
	req := map[string]interface{}{
		"model": model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": msgContent,
			},
		},
		"max_tokens":  maxTokens,
		"temperature": c.Temperature,
	}

	common.LogDebug("OpenRouter request",
		zap.String("model", model),
		zap.Int("prompt_length", len(c.Prompt)),
		zap.Bool("has_image", c.ImageData != ""),
	)

	// 發送請求
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("OpenRouter API returned error (status %d): %s", resp.StatusCode(), resp.String())
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse OpenRouter response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in OpenRouter response")
	}

	return result.Choices[0].Message.Content, nil
}
