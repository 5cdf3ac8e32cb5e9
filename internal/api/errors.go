package api

import (
	"errors"
	"net/http"

	"CultureSync/internal/adapter/tourapi"
	"CultureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// writeError 业务错误映射为 HTTP 状态码；5xx 记录日志并只返回通用提示
func writeError(c *gin.Context, logger *logrus.Logger, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrReviewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidReview), errors.Is(err, service.ErrInvalidBookmark):
		status = http.StatusBadRequest
	case errors.Is(err, tourapi.ErrSearchFailure),
		errors.Is(err, tourapi.ErrNetworkFailure),
		errors.Is(err, tourapi.ErrUpstream):
		status = http.StatusBadGateway
	}
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		// 底层驱动/上游的错误文本只进日志
		logger.WithError(err).Error(op + " failed")
		msg = serverErrorMessage(status)
	}
	c.JSON(status, gin.H{"error": msg})
}

func serverErrorMessage(status int) string {
	if status == http.StatusBadGateway {
		return "上游服务请求失败，请稍后重试"
	}
	return "服务器内部错误"
}
