package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/infrastructure/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		OpenRouter: config.OpenRouterConfig{Enabled: true, APIKey: "k", BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		Knowledge:  config.KnowledgeConfig{Enabled: true, Timeout: time.Second},
		OCR:        config.OCRConfig{Provider: "openrouter"},
		Cache:      config.CacheConfig{Enabled: true, Backend: "memory", MaxSize: 10, TTL: time.Minute},
		Queue:      config.QueueConfig{Workers: 1, MaxSize: 1},
	}
}

func TestBuildOnline(t *testing.T) {
	c, err := Build(context.Background(), baseConfig(), Options{})
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.AI)
	require.NotNil(t, c.OCR)
	assert.Equal(t, "openrouter", c.OCR.Name())
	assert.NotNil(t, c.AI.GateStatus())
	assert.NotNil(t, c.AI.CacheStats())
}

func TestBuildOffline(t *testing.T) {
	c, err := Build(context.Background(), baseConfig(), Options{Offline: true})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.AI)
	assert.Nil(t, c.OCR)

	report := c.Analyzer.AnalyzeText(context.Background(), "Ingredients: zorblax", nil)
	require.Len(t, report.Results, 1)
	assert.Equal(t, ingredient.CategoryUnknown, report.Results[0].Category)
}

func TestBuildWithoutOpenRouter(t *testing.T) {
	cfg := baseConfig()
	cfg.OpenRouter.Enabled = false
	c, err := Build(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.AI)
	assert.Nil(t, c.OCR)
	assert.NotNil(t, c.Analyzer)
}
