package handlers

import (
	"errors"
	"net/http"

	"carrental/database"
	"carrental/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIResponse 定義統一的 API 回應結構
type APIResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"` // omitempty 表示如果為空則不顯示
	Error   string      `json:"error,omitempty"`
	Field   string      `json:"field,omitempty"`
}

// SuccessResponse 返回成功的回應
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 返回失敗的回應
func ErrorResponse(c *gin.Context, statusCode int, message string, err string) {
	c.JSON(statusCode, APIResponse{
		Status:  false,
		Message: message,
		Error:   err,
	})
}

// BindErrorResponse 請求內容無法解析或不符合格式
func BindErrorResponse(c *gin.Context, err error) {
	ErrorResponse(c, http.StatusBadRequest, "輸入格式錯誤", err.Error())
}

// ServiceErrorResponse 依錯誤種類決定 HTTP 狀態碼
func ServiceErrorResponse(c *gin.Context, logger *zap.Logger, message string, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Status:  false,
			Message: message,
			Error:   ve.Error(),
			Field:   ve.Field,
		})
	case services.IsNotFoundError(err):
		ErrorResponse(c, http.StatusNotFound, "資料不存在", err.Error())
	case database.IsDuplicateKey(err):
		ErrorResponse(c, http.StatusConflict, "資料重複", err.Error())
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		ErrorResponse(c, http.StatusInternalServerError, message, err.Error())
	}
}
