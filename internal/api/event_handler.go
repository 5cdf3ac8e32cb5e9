package api

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"
	"CultureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EventQuerier 行事查询（service.EventService 实现）
type EventQuerier interface {
	ListEvents(ctx context.Context, category model.Category, keyword string) *service.EventListResult
	SearchEvents(ctx context.Context, keyword string, category model.Category) ([]model.Event, error)
	ListFestivals(ctx context.Context, q interfaces.FestivalQuery) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
}

var yyyymmdd = regexp.MustCompile(`^\d{8}$`)

type EventHandler struct {
	events EventQuerier
	logger *logrus.Logger
	now    func() time.Time
}

func NewEventHandler(events EventQuerier, logger *logrus.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger, now: time.Now}
}

// ListEvents 聚合列表
// GET /api/events?category=festival&keyword=치맥
func (h *EventHandler) ListEvents(c *gin.Context) {
	category := model.Category(c.DefaultQuery("category", string(model.CategoryAll)))
	result := h.events.ListEvents(c.Request.Context(), category, c.Query("keyword"))
	c.JSON(http.StatusOK, result)
}

// SearchEvents 关键字检索，上游失败返回 502
// GET /api/events/search?keyword=&category=
func (h *EventHandler) SearchEvents(c *gin.Context) {
	category := model.Category(c.DefaultQuery("category", string(model.CategoryAll)))
	events, err := h.events.SearchEvents(c.Request.Context(), c.Query("keyword"), category)
	if err != nil {
		writeError(c, h.logger, "SearchEvents", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// ListFestivals 庆典期间检索，start_date 缺省为今天
// GET /api/events/festivals?start_date=20240701&end_date=20240731&keyword=
func (h *EventHandler) ListFestivals(c *gin.Context) {
	start := c.DefaultQuery("start_date", h.now().Format("20060102"))
	end := c.Query("end_date")
	if !yyyymmdd.MatchString(start) || (end != "" && !yyyymmdd.MatchString(end)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date/end_date must be YYYYMMDD"})
		return
	}
	if end != "" && end < start {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must not be before start_date"})
		return
	}
	events, err := h.events.ListFestivals(c.Request.Context(), interfaces.FestivalQuery{
		EventStartDate: start,
		EventEndDate:   end,
		Keyword:        c.Query("keyword"),
	})
	if err != nil {
		writeError(c, h.logger, "ListFestivals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events, "total": len(events)})
}

// GetEvent 详情；无记录 404
// GET /api/events/:id
func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")
	ev, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, "GetEvent", err)
		return
	}
	if ev == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	c.JSON(http.StatusOK, ev)
}
