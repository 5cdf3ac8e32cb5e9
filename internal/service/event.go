package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/metrics"
	"CultureSync/internal/model"

	"github.com/sirupsen/logrus"
)

//go:embed fallback_events.json
var fallbackEventsJSON []byte

// LoadFallbackEvents 解析内置的样例行事数据（上游完全不可用时展示）
func LoadFallbackEvents() ([]model.Event, error) {
	var events []model.Event
	if err := json.Unmarshal(fallbackEventsJSON, &events); err != nil {
		return nil, fmt.Errorf("解析兜底数据失败: %w", err)
	}
	return events, nil
}

// EventListResult 列表接口返回
type EventListResult struct {
	Events           []model.Event `json:"events"`
	Total            int           `json:"total"`
	Fallback         bool          `json:"fallback"`          // 是否为兜底样例数据
	FailedPartitions int           `json:"failed_partitions"` // 拉取失败的分区数
}

// EventService 面向前端的行事查询服务：聚合 + 兜底替换
type EventService struct {
	aggregator *Aggregator
	source     interfaces.EventSource
	fallback   []model.Event
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

// NewEventService 创建 EventService；兜底数据解析失败只记日志，此时兜底为空列表
func NewEventService(aggregator *Aggregator, source interfaces.EventSource, logger *logrus.Logger, m *metrics.Metrics) *EventService {
	fallback, err := LoadFallbackEvents()
	if err != nil {
		logger.WithError(err).Error("加载兜底数据失败")
	}
	return &EventService{
		aggregator: aggregator,
		source:     source,
		fallback:   fallback,
		logger:     logger,
		metrics:    m,
	}
}

// ListEvents 所有分区都失败且没有任何结果时，改用兜底数据（同样按分类与关键字过滤）
func (s *EventService) ListEvents(ctx context.Context, category model.Category, keyword string) *EventListResult {
	res := s.aggregator.GetAllEvents(ctx, category, keyword)
	if !res.TotalFailure() {
		return &EventListResult{
			Events:           res.Events,
			Total:            len(res.Events),
			FailedPartitions: res.Failed,
		}
	}

	s.metrics.IncFallback()
	s.logger.WithFields(logrus.Fields{
		"category": string(category),
		"failed":   res.Failed,
	}).Warn("上游全部分区不可用，返回兜底数据")

	events := FilterByKeyword(FilterByCategory(s.fallbackCopy(), category), keyword)
	SortByStartDate(events)
	return &EventListResult{
		Events:           events,
		Total:            len(events),
		Fallback:         true,
		FailedPartitions: res.Failed,
	}
}

// SearchEvents 关键字检索；关键字为空时退化为列表查询。上游失败原样返回错误（ErrSearchFailure）。
func (s *EventService) SearchEvents(ctx context.Context, keyword string, category model.Category) ([]model.Event, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListEvents(ctx, category, "").Events, nil
	}
	events, err := s.source.SearchEvents(ctx, keyword, category.ContentTypeID())
	if err != nil {
		return nil, err
	}
	events = MergeEvents(events)
	SortByStartDate(events)
	return events, nil
}

// ListFestivals 按举办期间查询庆典（searchFestival2）
func (s *EventService) ListFestivals(ctx context.Context, q interfaces.FestivalQuery) ([]model.Event, error) {
	events, err := s.source.GetFestivalEvents(ctx, q)
	if err != nil {
		return nil, err
	}
	events = MergeEvents(events)
	SortByStartDate(events)
	return events, nil
}

// GetEvent 详情。上游无记录或请求失败时查兜底数据；都没有时：无记录返回 (nil, nil)，失败返回错误。
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	ev, err := s.source.GetEventDetail(ctx, id)
	if ev != nil && err == nil {
		return ev, nil
	}
	if fb := s.fallbackByID(id); fb != nil {
		if err != nil {
			s.logger.WithError(err).WithField("content_id", id).Warn("详情拉取失败，返回兜底数据")
		}
		return fb, nil
	}
	return nil, err
}

func (s *EventService) fallbackByID(id string) *model.Event {
	for i := range s.fallback {
		if s.fallback[i].ID == id {
			ev := s.fallback[i]
			return &ev
		}
	}
	return nil
}

func (s *EventService) fallbackCopy() []model.Event {
	out := make([]model.Event, len(s.fallback))
	copy(out, s.fallback)
	return out
}
