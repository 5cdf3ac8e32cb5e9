package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 数据库连通性检查（*sql.DB 实现）
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	hasCredential bool
	db            Pinger // nil 表示未配置数据库
}

func NewHealthHandler(hasCredential bool, db Pinger) *HealthHandler {
	return &HealthHandler{hasCredential: hasCredential, db: db}
}

// Liveness GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness GET /readyz：缺少服务密钥或数据库不可达时返回 503
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{"tourapi_credential": "ok", "database": "disabled"}
	ready := true
	if !h.hasCredential {
		checks["tourapi_credential"] = "missing"
		ready = false
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			checks["database"] = err.Error()
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"ready": ready, "checks": checks})
}
