package api

import (
	"net/http"
	"net/url"
	"strings"

	"CultureSync/internal/service"

	"github.com/gin-gonic/gin"
)

// 调用方身份由上游网关（登录层）写入请求头
const (
	HeaderUserID    = "X-User-ID"
	HeaderUserName  = "X-User-Name"
	HeaderUserPhoto = "X-User-Photo"
)

// requireAuthor 缺少 X-User-ID 时直接返回 401
func requireAuthor(c *gin.Context) (service.Author, bool) {
	id := strings.TrimSpace(c.GetHeader(HeaderUserID))
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "X-User-ID is required"})
		return service.Author{}, false
	}
	return service.Author{
		ID:    id,
		Name:  headerText(c, HeaderUserName),
		Photo: strings.TrimSpace(c.GetHeader(HeaderUserPhoto)),
	}, true
}

// headerText 头部值允许 URL 编码（非 ASCII 昵称），解码失败时用原值
func headerText(c *gin.Context, key string) string {
	raw := strings.TrimSpace(c.GetHeader(key))
	if v, err := url.QueryUnescape(raw); err == nil {
		return v
	}
	return raw
}
