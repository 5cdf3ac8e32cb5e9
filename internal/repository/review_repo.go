package repository

import (
	"context"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"

	"gorm.io/gorm"
)

type reviewStats struct {
	Count int64
	Avg   float64
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) interfaces.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Update 只更新可编辑字段
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]interface{}{
			"rating":     review.Rating,
			"content":    review.Content,
			"images":     review.Images,
			"updated_at": review.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByEvent(ctx context.Context, eventID string) ([]*model.Review, error) {
	var list []*model.Review
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userID string) ([]*model.Review, error) {
	var list []*model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Stats 评价数与平均分（未取整，由服务层处理）
func (r *reviewRepository) Stats(ctx context.Context, eventID string) (int64, float64, error) {
	var row reviewStats
	if err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("event_id = ?", eventID).
		Find(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Count, row.Avg, nil
}
