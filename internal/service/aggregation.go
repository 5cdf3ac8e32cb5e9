package service

import (
	"context"
	"sort"
	"strings"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/metrics"
	"CultureSync/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 4

// AggregateResult 一次聚合的结果；Succeeded/Failed 为分区计数
type AggregateResult struct {
	Events    []model.Event
	Succeeded int
	Failed    int
}

// TotalFailure 没有任何分区成功且结果为空，调用方应改用兜底数据
func (r *AggregateResult) TotalFailure() bool {
	return r.Succeeded == 0 && len(r.Events) == 0
}

// Aggregator 按分类分区拉取 areaBasedList2 并合并：去重、过滤、按开始日期排序
type Aggregator struct {
	source         interfaces.EventSource
	logger         *logrus.Logger
	metrics        *metrics.Metrics
	maxConcurrency int
}

func NewAggregator(source interfaces.EventSource, logger *logrus.Logger, m *metrics.Metrics, maxConcurrency int) *Aggregator {
	if maxConcurrency <= 0 {
		maxConcurrency = defaultMaxConcurrency
	}
	return &Aggregator{
		source:         source,
		logger:         logger,
		metrics:        m,
		maxConcurrency: maxConcurrency,
	}
}

// GetAllEvents 聚合入口。单个分区失败只记日志，不影响其它分区；本方法不返回错误。
func (a *Aggregator) GetAllEvents(ctx context.Context, category model.Category, keyword string) *AggregateResult {
	codes := model.ContentTypesFor(category)

	// 每个分区写入自己的槽位，合并顺序与分区声明顺序一致
	partitions := make([][]model.Event, len(codes))
	failed := make([]bool, len(codes))

	var g errgroup.Group
	g.SetLimit(a.maxConcurrency)
	for i, code := range codes {
		g.Go(func() error {
			events, err := a.source.GetAreaBasedEvents(ctx, interfaces.AreaQuery{ContentTypeID: code})
			if err != nil {
				failed[i] = true
				a.metrics.IncPartition(code, "failed")
				a.logger.WithError(err).WithField("content_type_id", code).Warn("分区拉取失败，其它分区继续")
				return nil
			}
			partitions[i] = events
			a.metrics.IncPartition(code, "ok")
			return nil
		})
	}
	_ = g.Wait()

	result := &AggregateResult{}
	for _, f := range failed {
		if f {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	events := MergeEvents(partitions...)
	events = FilterByKeyword(events, keyword)
	SortByStartDate(events)
	result.Events = events

	a.logger.WithFields(logrus.Fields{
		"category":  string(category),
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
		"events":    len(events),
	}).Debug("聚合完成")
	return result
}

// MergeEvents 按参数顺序拼接并按 id 去重，保留首次出现的记录
func MergeEvents(lists ...[]model.Event) []model.Event {
	seen := make(map[string]struct{})
	merged := make([]model.Event, 0)
	for _, list := range lists {
		for _, ev := range list {
			if _, ok := seen[ev.ID]; ok {
				continue
			}
			seen[ev.ID] = struct{}{}
			merged = append(merged, ev)
		}
	}
	return merged
}

// FilterByKeyword 标题/地点/简介包含关键字（忽略大小写）；关键字为空时原样返回
func FilterByKeyword(events []model.Event, keyword string) []model.Event {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if strings.Contains(strings.ToLower(ev.Title), kw) ||
			strings.Contains(strings.ToLower(ev.Place), kw) ||
			strings.Contains(strings.ToLower(ev.Description), kw) {
			out = append(out, ev)
		}
	}
	return out
}

// FilterByCategory all 或无法识别的分类不过滤
func FilterByCategory(events []model.Event, category model.Category) []model.Event {
	if !category.Valid() {
		return events
	}
	out := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.Category == category {
			out = append(out, ev)
		}
	}
	return out
}

// SortByStartDate 按原始 YYYYMMDD 升序稳定排序；无开始日期的记录排在最后并保持原有相对顺序
func SortByStartDate(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].StartDate, events[j].StartDate
		if a == "" {
			return false
		}
		if b == "" {
			return true
		}
		return a < b
	})
}
