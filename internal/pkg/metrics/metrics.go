// Package metrics 定義服務的 Prometheus 指標
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ingredient_analyzer"

var (
	// AnalysesTotal 分析次數，依報告狀態區分
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_total",
		Help:      "Total analyses by report status (empty, unresolved, analyzed)",
	}, []string{"source", "status"})

	// ResultsTotal 成分分級數量
	ResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingredient_results_total",
		Help:      "Total ingredient results by category",
	}, []string{"category"})

	// KnowledgeCalls 外部知識來源呼叫結果
	KnowledgeCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "knowledge_calls_total",
		Help:      "Knowledge-source calls by outcome",
	}, []string{"outcome"})

	// KnowledgeDuration 外部知識來源耗時
	KnowledgeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "knowledge_call_duration_seconds",
		Help:      "Knowledge-source call latency",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})

	// OCRCalls 文字辨識呼叫結果
	OCRCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ocr_calls_total",
		Help:      "OCR calls by provider and outcome",
	}, []string{"provider", "outcome"})

	// CacheLookups AI 回應快取查詢
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "AI response cache lookups by backend and result",
	}, []string{"backend", "result"})

	// GateWaiting 等待 AI 呼叫名額的請求數
	GateWaiting = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ai_gate_waiting",
		Help:      "Callers waiting for an AI call slot",
	})

	// GateActive 進行中的 AI 呼叫
	GateActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ai_gate_active",
		Help:      "AI calls in flight",
	})

	// HTTPRequests HTTP 請求數
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})
)

// Outcome 將錯誤轉為 outcome 標籤
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveKnowledgeCall 紀錄一次知識來源呼叫
func ObserveKnowledgeCall(outcome string, d time.Duration) {
	KnowledgeCalls.WithLabelValues(outcome).Inc()
	KnowledgeDuration.Observe(d.Seconds())
}

// Handler /metrics 端點
func Handler() http.Handler {
	return promhttp.Handler()
}
