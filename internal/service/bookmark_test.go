package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"CultureSync/internal/model"
)

type memBookmarkRepo struct {
	mu   sync.Mutex
	rows []*model.Bookmark
}

func (m *memBookmarkRepo) Upsert(_ context.Context, b *model.Bookmark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.UserID == b.UserID && row.EventID == b.EventID {
			row.EventTitle, row.EventImage, row.EventDate, row.Category = b.EventTitle, b.EventImage, b.EventDate, b.Category
			*b = *row
			return nil
		}
	}
	cp := *b
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memBookmarkRepo) Delete(_ context.Context, userID, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, row := range m.rows {
		if row.UserID == userID && row.EventID == eventID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookmarkRepo) ListByUser(_ context.Context, userID string) ([]*model.Bookmark, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Bookmark
	for _, row := range m.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memBookmarkRepo) Exists(_ context.Context, userID, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.UserID == userID && row.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func TestAddBookmarkIsIdempotent(t *testing.T) {
	repo := &memBookmarkRepo{}
	svc := NewBookmarkService(repo, quietLogger())
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "2786391", EventTitle: "치맥 페스티벌", Category: "festival"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "2786391", EventTitle: "대구 치맥 페스티벌", Category: "festival"})
	if err != nil {
		t.Fatal(err)
	}
	if len(repo.rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(repo.rows))
	}
	if second.ID != first.ID || second.EventTitle != "대구 치맥 페스티벌" {
		t.Errorf("second add should refresh the existing row: %+v", second)
	}
}

func TestAddBookmarkValidation(t *testing.T) {
	svc := NewBookmarkService(&memBookmarkRepo{}, quietLogger())
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "  "}); !errors.Is(err, ErrInvalidBookmark) {
		t.Errorf("blank event id: %v", err)
	}
	if _, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "1", Category: "performance"}); !errors.Is(err, ErrInvalidBookmark) {
		t.Errorf("unknown category: %v", err)
	}
	b, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "1"})
	if err != nil {
		t.Fatal(err)
	}
	if b.EventTitle != model.DefaultTitle || b.EventDate != model.DefaultDate {
		t.Errorf("defaults not applied: %+v", b)
	}
}

func TestRemoveAndCheckBookmark(t *testing.T) {
	svc := NewBookmarkService(&memBookmarkRepo{}, quietLogger())
	ctx := context.Background()
	if _, err := svc.Add(ctx, "u1", BookmarkInput{EventID: "1"}); err != nil {
		t.Fatal(err)
	}

	if ok, _ := svc.IsBookmarked(ctx, "u1", "1"); !ok {
		t.Error("expected bookmarked")
	}
	if ok, _ := svc.IsBookmarked(ctx, "u2", "1"); ok {
		t.Error("bookmarks must be per user")
	}

	removed, err := svc.Remove(ctx, "u1", "1")
	if err != nil || !removed {
		t.Fatalf("Remove: %v %v", removed, err)
	}
	removed, err = svc.Remove(ctx, "u1", "1")
	if err != nil || removed {
		t.Errorf("second remove: %v %v", removed, err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil || list == nil || len(list) != 0 {
		t.Errorf("list = %v (%v)", list, err)
	}
}
