package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidBookmark = errors.New("书签参数不合法")

// BookmarkInput 添加书签时由前端带上的行事快照
type BookmarkInput struct {
	EventID    string `json:"eventId"`
	EventTitle string `json:"eventTitle"`
	EventImage string `json:"eventImage"`
	EventDate  string `json:"eventDate"`
	Category   string `json:"category"`
}

type BookmarkService struct {
	repo   interfaces.BookmarkRepository
	logger *logrus.Logger
}

func NewBookmarkService(repo interfaces.BookmarkRepository, logger *logrus.Logger) *BookmarkService {
	return &BookmarkService{repo: repo, logger: logger}
}

// Add 幂等：同一用户重复收藏同一行事只保留一条（只刷新快照字段）
func (s *BookmarkService) Add(ctx context.Context, userID string, in BookmarkInput) (*model.Bookmark, error) {
	eventID := strings.TrimSpace(in.EventID)
	if eventID == "" {
		return nil, fmt.Errorf("%w: 缺少 eventId", ErrInvalidBookmark)
	}
	category := model.Category(in.Category)
	if in.Category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: 未知分类 %q", ErrInvalidBookmark, in.Category)
	}
	b := &model.Bookmark{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventID:    eventID,
		EventTitle: firstNonBlank(in.EventTitle, model.DefaultTitle),
		EventImage: in.EventImage,
		EventDate:  firstNonBlank(in.EventDate, model.DefaultDate),
		Category:   in.Category,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, fmt.Errorf("保存书签失败: %w", err)
	}
	return b, nil
}

// Remove 返回是否真的删除了一条记录
func (s *BookmarkService) Remove(ctx context.Context, userID, eventID string) (bool, error) {
	removed, err := s.repo.Delete(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("删除书签失败: %w", err)
	}
	if !removed {
		s.logger.WithFields(logrus.Fields{"user_id": userID, "event_id": eventID}).Debug("书签不存在，忽略删除")
	}
	return removed, nil
}

func (s *BookmarkService) List(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询书签失败: %w", err)
	}
	if list == nil {
		list = []*model.Bookmark{}
	}
	return list, nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, eventID string) (bool, error) {
	ok, err := s.repo.Exists(ctx, userID, eventID)
	if err != nil {
		return false, fmt.Errorf("查询书签状态失败: %w", err)
	}
	return ok, nil
}
