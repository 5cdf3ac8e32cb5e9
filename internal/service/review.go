package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	minReviewRunes  = 10
	maxReviewRunes  = 500
	maxReviewImages = 3
)

var (
	ErrReviewNotFound = errors.New("评价不存在")
	ErrForbidden      = errors.New("无权操作他人的评价")
	ErrInvalidReview  = errors.New("评价内容不合法")
)

// Author 调用方身份（由请求头 X-User-ID / X-User-Name / X-User-Photo 提供）
type Author struct {
	ID    string
	Name  string
	Photo string
}

// ReviewInput 新建评价
type ReviewInput struct {
	EventID    string   `json:"eventId"`
	EventTitle string   `json:"eventTitle"`
	Rating     int      `json:"rating"`
	Content    string   `json:"content"`
	Images     []string `json:"images"`
}

// ReviewUpdate 修改评价，仅评分、内容、图片可改
type ReviewUpdate struct {
	Rating  int      `json:"rating"`
	Content string   `json:"content"`
	Images  []string `json:"images"`
}

// ReviewStats 单个行事的评价统计；Average 保留一位小数
type ReviewStats struct {
	EventID string  `json:"eventId"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

type ReviewService struct {
	repo   interfaces.ReviewRepository
	logger *logrus.Logger
	now    func() time.Time
}

func NewReviewService(repo interfaces.ReviewRepository, logger *logrus.Logger) *ReviewService {
	return &ReviewService{repo: repo, logger: logger, now: time.Now}
}

func (s *ReviewService) Create(ctx context.Context, author Author, in ReviewInput) (*model.Review, error) {
	if strings.TrimSpace(in.EventID) == "" {
		return nil, fmt.Errorf("%w: 缺少 eventId", ErrInvalidReview)
	}
	content, err := validateReview(in.Rating, in.Content, in.Images)
	if err != nil {
		return nil, err
	}
	images, err := encodeImages(in.Images)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(author.Name)
	if name == "" {
		name = "익명"
	}
	now := s.now()
	r := &model.Review{
		ID:         uuid.NewString(),
		UserID:     author.ID,
		UserName:   name,
		UserPhoto:  author.Photo,
		EventID:    strings.TrimSpace(in.EventID),
		EventTitle: firstNonBlank(in.EventTitle, model.DefaultTitle),
		Rating:     in.Rating,
		Content:    content,
		Images:     images,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("保存评价失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"review_id": r.ID,
		"event_id":  r.EventID,
		"user_id":   r.UserID,
	}).Info("评价已创建")
	return r, nil
}

// Update 只有作者本人可以修改
func (s *ReviewService) Update(ctx context.Context, userID, id string, in ReviewUpdate) (*model.Review, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	content, err := validateReview(in.Rating, in.Content, in.Images)
	if err != nil {
		return nil, err
	}
	images, err := encodeImages(in.Images)
	if err != nil {
		return nil, err
	}
	r.Rating = in.Rating
	r.Content = content
	r.Images = images
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, fmt.Errorf("更新评价失败: %w", err)
	}
	return r, nil
}

// Delete 只有作者本人可以删除
func (s *ReviewService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("删除评价失败: %w", err)
	}
	s.logger.WithFields(logrus.Fields{"review_id": id, "user_id": userID}).Info("评价已删除")
	return nil
}

// ListByEvent 按创建时间倒序
func (s *ReviewService) ListByEvent(ctx context.Context, eventID string) ([]*model.Review, error) {
	list, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("查询行事评价失败: %w", err)
	}
	return nonNilReviews(list), nil
}

// ListByUser 按创建时间倒序
func (s *ReviewService) ListByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("查询用户评价失败: %w", err)
	}
	return nonNilReviews(list), nil
}

func (s *ReviewService) Stats(ctx context.Context, eventID string) (*ReviewStats, error) {
	count, avg, err := s.repo.Stats(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("查询评价统计失败: %w", err)
	}
	stats := &ReviewStats{EventID: eventID, Count: count}
	if count > 0 {
		stats.Average = math.Round(avg*10) / 10
	}
	return stats, nil
}

func (s *ReviewService) owned(ctx context.Context, userID, id string) (*model.Review, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("查询评价失败: %w", err)
	}
	if r == nil {
		return nil, ErrReviewNotFound
	}
	if r.UserID != userID {
		return nil, ErrForbidden
	}
	return r, nil
}

// validateReview 返回去掉首尾空白后的内容
func validateReview(rating int, content string, images []string) (string, error) {
	if rating < 1 || rating > 5 {
		return "", fmt.Errorf("%w: 评分必须在 1-5 之间", ErrInvalidReview)
	}
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	if n < minReviewRunes {
		return "", fmt.Errorf("%w: 内容至少 %d 个字", ErrInvalidReview, minReviewRunes)
	}
	if n > maxReviewRunes {
		return "", fmt.Errorf("%w: 内容最多 %d 个字", ErrInvalidReview, maxReviewRunes)
	}
	if len(images) > maxReviewImages {
		return "", fmt.Errorf("%w: 图片最多 %d 张", ErrInvalidReview, maxReviewImages)
	}
	for _, img := range images {
		if strings.TrimSpace(img) == "" {
			return "", fmt.Errorf("%w: 图片地址不能为空", ErrInvalidReview)
		}
	}
	return content, nil
}

func encodeImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	b, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("序列化图片列表失败: %w", err)
	}
	return datatypes.JSON(b), nil
}

func nonNilReviews(list []*model.Review) []*model.Review {
	if list == nil {
		return []*model.Review{}
	}
	return list
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
