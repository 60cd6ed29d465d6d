// Package handlers HTTP 處理器共用的回應工具
package handlers

import (
	"context"
	"errors"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ingredient-analyzer/internal/pkg/common"
)

// RequestID 取得請求 ID，沒有時產生一個並寫回回應標頭
func RequestID(c *gin.Context) string {
	if id := requestid.Get(c); id != "" {
		return id
	}
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = common.GenerateUUID()
	}
	c.Header("X-Request-ID", id)
	return id
}

// RespondError 將錯誤轉為 CustomError 並回傳 JSON
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		err = common.ErrGatewayTimeout.Wrap(err)
	case common.IsValidationError(err):
		err = common.ErrInvalidRequest.Wrap(err)
	}

	ce := common.AsCustomError(err)
	if ce.Status >= 500 {
		common.LogError("請求處理失敗",
			zap.String("request_id", RequestID(c)),
			zap.String("code", ce.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(gin.IsDebugging()))
}

// BadRequest 請求格式錯誤
func BadRequest(c *gin.Context, err error) {
	RespondError(c, common.ErrInvalidRequest.Wrap(err))
}
