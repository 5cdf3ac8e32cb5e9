package repository

import (
	"context"

	"CultureSync/internal/interfaces"
	"CultureSync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) interfaces.BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Upsert (user_id, event_id) 冲突时只刷新快照字段；写入后回读，返回库中实际保留的记录
func (r *bookmarkRepository) Upsert(ctx context.Context, b *model.Bookmark) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"event_title", "event_image", "event_date", "category"}),
	}).Create(b).Error; err != nil {
		return err
	}
	// 冲突时库里保留旧 id，回读不能带上 b 的新 id 作为条件
	var stored model.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", b.UserID, b.EventID).
		Take(&stored).Error; err != nil {
		return err
	}
	*b = stored
	return nil
}

func (r *bookmarkRepository) Delete(ctx context.Context, userID, eventID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&model.Bookmark{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *bookmarkRepository) ListByUser(ctx context.Context, userID string) ([]*model.Bookmark, error) {
	var list []*model.Bookmark
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, eventID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Bookmark{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
