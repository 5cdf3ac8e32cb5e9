package interfaces

import (
	"context"

	"CultureSync/internal/model"
)

// AreaQuery 지역기반 목록（areaBasedList2）查询参数
type AreaQuery struct {
	ContentTypeID string // 分区：12/14/15/25
	SigunguCode   string // 可选：区县代码
}

// FestivalQuery 축제 검색（searchFestival2）查询参数，日期为 YYYYMMDD
type FestivalQuery struct {
	EventStartDate string
	EventEndDate   string
	Keyword        string
}

// EventSource 上游行事数据源必须实现的接口（TourAPI 适配器实现）
type EventSource interface {
	GetAreaBasedEvents(ctx context.Context, q AreaQuery) ([]model.Event, error)   // 单分区拉取并归一化
	GetFestivalEvents(ctx context.Context, q FestivalQuery) ([]model.Event, error) // 축제 기간 검색
	SearchEvents(ctx context.Context, keyword, contentTypeID string) ([]model.Event, error)
	GetEventDetail(ctx context.Context, contentID string) (*model.Event, error) // 无记录时返回 nil, nil
}

// BookmarkRepository 书签持久化接口
type BookmarkRepository interface {
	Upsert(ctx context.Context, b *model.Bookmark) error
	Delete(ctx context.Context, userID, eventID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Bookmark, error)
	Exists(ctx context.Context, userID, eventID string) (bool, error)
}

// ReviewRepository 评价持久化接口
type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) error
	Update(ctx context.Context, r *model.Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	ListByEvent(ctx context.Context, eventID string) ([]*model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Review, error)
	Stats(ctx context.Context, eventID string) (count int64, avg float64, err error)
}
