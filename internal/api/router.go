package api

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/api/handlers/analysis"
	"ingredient-analyzer/internal/api/handlers/health"
	"ingredient-analyzer/internal/api/handlers/lookup"
	"ingredient-analyzer/internal/api/handlers/profiles"
	"ingredient-analyzer/internal/api/middleware"
	"ingredient-analyzer/internal/core/ingredient"
	"ingredient-analyzer/internal/core/ocr"
	"ingredient-analyzer/internal/core/profile"
	"ingredient-analyzer/internal/infrastructure/config"
	"ingredient-analyzer/internal/pkg/common"
	"ingredient-analyzer/internal/pkg/metrics"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Analyzer *ingredient.Analyzer
	OCR      ocr.Extractor         // nil 代表停用圖片分析
	Profiles profile.Store
	AI       health.StatusProvider // nil 代表未啟用 AI
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if deps.Profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	// 健康檢查讀取的服務
	router.Use(func(c *gin.Context) {
		c.Set(health.ConfigKey, cfg)
		if deps.AI != nil {
			c.Set(health.AIServiceKey, deps.AI)
		}
		c.Next()
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	analysisHandler := analysis.NewHandler(deps.Analyzer, deps.OCR, deps.Profiles, cfg.Analysis.MaxTextBytes)
	lookupHandler := lookup.NewHandler(deps.Analyzer.Classifier().Table())
	profileHandler := profiles.NewHandler(deps.Profiles)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Deduplication(cfg.DedupWindow))
	{
		analyzeGroup := api.Group("/analyze")
		{
			analyzeGroup.POST("/text", analysisHandler.AnalyzeText)
			analyzeGroup.POST("/image", analysisHandler.AnalyzeImage)
		}

		api.POST("/extract", analysisHandler.Extract)

		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("/lookup", lookupHandler.Lookup)
			ingredientGroup.GET("/tips", lookupHandler.Tips)
			ingredientGroup.GET("/misleading", lookupHandler.Misleading)
			ingredientGroup.GET("/stats", lookupHandler.Stats)
		}

		profileGroup := api.Group("/profiles/:user_id")
		{
			profileGroup.GET("/allergies", profileHandler.Get)
			profileGroup.PUT("/allergies", profileHandler.Put)
		}
	}

	ocrProvider := "disabled"
	if deps.OCR != nil {
		ocrProvider = deps.OCR.Name()
	}
	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("ocr_provider", ocrProvider),
		zap.Bool("ai_enabled", deps.AI != nil),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
