package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/core/ai/queue"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
)

// context 中的鍵值
const (
	ConfigKey    = "config"
	AIServiceKey = "ai_service"
)

// StatusProvider 提供 AI 呼叫閘門與快取狀態
type StatusProvider interface {
	GateStatus() *queue.Status
	CacheStats() map[string]interface{}
}

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Features  map[string]interface{} `json:"features"`
	Queue     *queue.Status          `json:"queue,omitempty"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

func configFrom(c *gin.Context) (*config.Config, bool) {
	v, exists := c.Get(ConfigKey)
	if !exists {
		return nil, false
	}
	cfg, ok := v.(*config.Config)
	return cfg, ok
}

func statusFrom(c *gin.Context) StatusProvider {
	v, exists := c.Get(AIServiceKey)
	if !exists {
		return nil
	}
	sp, _ := v.(StatusProvider)
	return sp
}

// HealthCheck 健康檢查處理器
func HealthCheck(c *gin.Context) {
	cfg, ok := configFrom(c)
	if !ok {
		common.LogError("Configuration not found in context")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Configuration not found",
		})
		return
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Features: map[string]interface{}{
			"knowledge":     cfg.OpenRouter.Enabled && cfg.Knowledge.Enabled,
			"ocr_provider":  cfg.OCR.Provider,
			"cache_backend": cacheBackend(cfg),
			"profile_store": profileBackend(cfg),
		},
	}

	if sp := statusFrom(c); sp != nil {
		response.Queue = sp.GateStatus()
		response.Cache = sp.CacheStats()
		if response.Queue != nil && response.Queue.Closed {
			response.Status = "degraded"
		}
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器，AI 閘門關閉時回傳 503
func ReadinessCheck(c *gin.Context) {
	if _, ok := configFrom(c); !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "configuration not loaded"})
		return
	}
	if sp := statusFrom(c); sp != nil {
		if st := sp.GateStatus(); st != nil && st.Closed {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "ai gate closed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

func cacheBackend(cfg *config.Config) string {
	if !cfg.Cache.Enabled {
		return "disabled"
	}
	return cfg.Cache.Backend
}

func profileBackend(cfg *config.Config) string {
	if cfg.Database.DSN == "" {
		return "memory"
	}
	return "postgres"
}
