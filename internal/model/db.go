package model

import (
	"time"

	"gorm.io/datatypes"
)

// Bookmark 用户收藏的行事（保存标题/图片等快照，避免列表页再次请求上游）
type Bookmark struct {
	ID         string    `gorm:"column:id;type:varchar(64);primaryKey;comment:书签UUID" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(128);not null;uniqueIndex:uq_user_event;comment:用户ID" json:"userId"`
	EventID    string    `gorm:"column:event_id;type:varchar(64);not null;uniqueIndex:uq_user_event;comment:TourAPI contentid" json:"eventId"`
	EventTitle string    `gorm:"column:event_title;type:varchar(256);not null;comment:行事标题" json:"eventTitle"`
	EventImage string    `gorm:"column:event_image;type:varchar(512);comment:行事图片" json:"eventImage"`
	EventDate  string    `gorm:"column:event_date;type:varchar(64);comment:展示用日期" json:"eventDate"`
	Category   string    `gorm:"column:category;type:varchar(16);comment:分类" json:"category"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
}

// Review 用户对行事的评价
type Review struct {
	ID         string         `gorm:"column:id;type:varchar(64);primaryKey;comment:评价UUID" json:"id"`
	UserID     string         `gorm:"column:user_id;type:varchar(128);not null;index;comment:用户ID" json:"userId"`
	UserName   string         `gorm:"column:user_name;type:varchar(128);not null;comment:用户昵称" json:"userName"`
	UserPhoto  string         `gorm:"column:user_photo;type:varchar(512);comment:用户头像" json:"userPhoto,omitempty"`
	EventID    string         `gorm:"column:event_id;type:varchar(64);not null;index;comment:TourAPI contentid" json:"eventId"`
	EventTitle string         `gorm:"column:event_title;type:varchar(256);not null;comment:行事标题" json:"eventTitle"`
	Rating     int            `gorm:"column:rating;type:smallint;not null;comment:评分1-5" json:"rating"`
	Content    string         `gorm:"column:content;type:text;not null;comment:评价内容" json:"content"`
	Images     datatypes.JSON `gorm:"column:images;type:jsonb;comment:图片URL列表" json:"images"`
	CreatedAt  time.Time      `gorm:"column:created_at;type:timestamp;default:now();comment:创建时间" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;type:timestamp;default:now();comment:更新时间" json:"updatedAt"`
}

func (Bookmark) TableName() string { return "bookmarks" }
func (Review) TableName() string   { return "reviews" }
