package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖；Reviews/Bookmarks 为 nil 时（未配置数据库）对应接口返回 503
type Handlers struct {
	Events    *EventHandler
	Reviews   *ReviewHandler
	Bookmarks *BookmarkHandler
	Health    *HealthHandler
}

// RegisterRoutes 注册全部业务路由
func RegisterRoutes(r gin.IRouter, h Handlers) {
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	events := r.Group("/api/events")
	events.GET("", h.Events.ListEvents)
	events.GET("/search", h.Events.SearchEvents)
	events.GET("/festivals", h.Events.ListFestivals)
	events.GET("/:id", h.Events.GetEvent)

	me := r.Group("/api/users/me")
	if h.Reviews != nil {
		events.GET("/:id/reviews", h.Reviews.ListByEvent)
		events.GET("/:id/reviews/stats", h.Reviews.Stats)
		r.POST("/api/reviews", h.Reviews.Create)
		r.PUT("/api/reviews/:id", h.Reviews.Update)
		r.DELETE("/api/reviews/:id", h.Reviews.Delete)
		me.GET("/reviews", h.Reviews.ListMine)
	} else {
		events.GET("/:id/reviews", storageUnavailable)
		events.GET("/:id/reviews/stats", storageUnavailable)
		r.POST("/api/reviews", storageUnavailable)
		r.PUT("/api/reviews/:id", storageUnavailable)
		r.DELETE("/api/reviews/:id", storageUnavailable)
		me.GET("/reviews", storageUnavailable)
	}
	if h.Bookmarks != nil {
		me.GET("/bookmarks", h.Bookmarks.List)
		me.POST("/bookmarks", h.Bookmarks.Add)
		me.GET("/bookmarks/:event_id", h.Bookmarks.Check)
		me.DELETE("/bookmarks/:event_id", h.Bookmarks.Remove)
	} else {
		me.GET("/bookmarks", storageUnavailable)
		me.POST("/bookmarks", storageUnavailable)
		me.GET("/bookmarks/:event_id", storageUnavailable)
		me.DELETE("/bookmarks/:event_id", storageUnavailable)
	}
}

func storageUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database.dsn 未配置，书签与评价接口不可用"})
}
