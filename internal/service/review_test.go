package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"CultureSync/internal/model"

	"gorm.io/gorm"
)

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*model.Review
	err     error
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{reviews: map[string]*model.Review{}}
}

func (m *memReviewRepo) Create(_ context.Context, r *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

func (m *memReviewRepo) Update(_ context.Context, r *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[r.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *r
	m.reviews[r.ID] = &cp
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memReviewRepo) GetByID(_ context.Context, id string) (*model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReviewRepo) list(match func(*model.Review) bool) []*model.Review {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Review
	for _, r := range m.reviews {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memReviewRepo) ListByEvent(_ context.Context, eventID string) ([]*model.Review, error) {
	return m.list(func(r *model.Review) bool { return r.EventID == eventID }), nil
}

func (m *memReviewRepo) ListByUser(_ context.Context, userID string) ([]*model.Review, error) {
	return m.list(func(r *model.Review) bool { return r.UserID == userID }), nil
}

func (m *memReviewRepo) Stats(_ context.Context, eventID string) (int64, float64, error) {
	list := m.list(func(r *model.Review) bool { return r.EventID == eventID })
	if len(list) == 0 {
		return 0, 0, nil
	}
	sum := 0
	for _, r := range list {
		sum += r.Rating
	}
	return int64(len(list)), float64(sum) / float64(len(list)), nil
}

func newReviewService(repo *memReviewRepo) *ReviewService {
	svc := NewReviewService(repo, quietLogger())
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var tick time.Duration
	svc.now = func() time.Time {
		tick += time.Minute
		return base.Add(tick)
	}
	return svc
}

var alice = Author{ID: "u-alice", Name: "앨리스", Photo: "https://example.com/a.png"}

const validContent = "정말 즐거운 축제였습니다. 다음에도 오고 싶어요!"

func TestCreateReviewValidation(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	ctx := context.Background()

	tests := []struct {
		name string
		in   ReviewInput
	}{
		{"missing event", ReviewInput{Rating: 5, Content: validContent}},
		{"rating too low", ReviewInput{EventID: "1", Rating: 0, Content: validContent}},
		{"rating too high", ReviewInput{EventID: "1", Rating: 6, Content: validContent}},
		{"content too short", ReviewInput{EventID: "1", Rating: 3, Content: "  짧아요  "}},
		{"content too long", ReviewInput{EventID: "1", Rating: 3, Content: strings.Repeat("가", maxReviewRunes+1)}},
		{"too many images", ReviewInput{EventID: "1", Rating: 3, Content: validContent, Images: []string{"a", "b", "c", "d"}}},
		{"blank image", ReviewInput{EventID: "1", Rating: 3, Content: validContent, Images: []string{" "}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, alice, tt.in); !errors.Is(err, ErrInvalidReview) {
				t.Errorf("err = %v, want ErrInvalidReview", err)
			}
		})
	}
}

func TestCreateReviewCountsRunesNotBytes(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	// 10 个韩文字符 = 30 字节
	if _, err := svc.Create(context.Background(), alice, ReviewInput{EventID: "1", Rating: 4, Content: strings.Repeat("좋", 10)}); err != nil {
		t.Fatalf("10 runes should be accepted: %v", err)
	}
	if _, err := svc.Create(context.Background(), alice, ReviewInput{EventID: "1", Rating: 4, Content: strings.Repeat("가", maxReviewRunes)}); err != nil {
		t.Fatalf("%d runes should be accepted: %v", maxReviewRunes, err)
	}
}

func TestCreateReview(t *testing.T) {
	repo := newMemReviewRepo()
	svc := newReviewService(repo)

	r, err := svc.Create(context.Background(), Author{ID: "u1"}, ReviewInput{
		EventID: " 2786391 ",
		Rating:  5,
		Content: "  " + validContent + "  ",
		Images:  []string{"https://example.com/1.jpg"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.ID == "" || r.EventID != "2786391" || r.Content != validContent {
		t.Errorf("unexpected review: %+v", r)
	}
	if r.UserName != "익명" || r.EventTitle != model.DefaultTitle {
		t.Errorf("defaults not applied: name=%q title=%q", r.UserName, r.EventTitle)
	}
	var images []string
	if err := json.Unmarshal(r.Images, &images); err != nil || len(images) != 1 {
		t.Errorf("images = %s (%v)", r.Images, err)
	}
	if _, ok := repo.reviews[r.ID]; !ok {
		t.Error("review not persisted")
	}
}

func TestCreateReviewWithoutImagesStoresEmptyArray(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	r, err := svc.Create(context.Background(), alice, ReviewInput{EventID: "1", Rating: 3, Content: validContent})
	if err != nil {
		t.Fatal(err)
	}
	if string(r.Images) != "[]" {
		t.Errorf("images = %s, want []", r.Images)
	}
}

func TestCreateReviewRepositoryError(t *testing.T) {
	repo := newMemReviewRepo()
	repo.err = errors.New("connection refused")
	svc := newReviewService(repo)
	if _, err := svc.Create(context.Background(), alice, ReviewInput{EventID: "1", Rating: 3, Content: validContent}); err == nil || errors.Is(err, ErrInvalidReview) {
		t.Errorf("expected storage error, got %v", err)
	}
}

func TestUpdateAndDeleteRequireOwner(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	ctx := context.Background()
	r, err := svc.Create(ctx, alice, ReviewInput{EventID: "1", Rating: 3, Content: validContent})
	if err != nil {
		t.Fatal(err)
	}

	upd := ReviewUpdate{Rating: 4, Content: "수정한 후기 내용입니다. 좋았어요."}
	if _, err := svc.Update(ctx, "u-bob", r.ID, upd); !errors.Is(err, ErrForbidden) {
		t.Errorf("update by other user: %v", err)
	}
	if err := svc.Delete(ctx, "u-bob", r.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete by other user: %v", err)
	}
	if _, err := svc.Update(ctx, alice.ID, "missing", upd); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("update missing: %v", err)
	}
	if _, err := svc.Update(ctx, alice.ID, r.ID, ReviewUpdate{Rating: 9, Content: validContent}); !errors.Is(err, ErrInvalidReview) {
		t.Errorf("invalid update: %v", err)
	}

	updated, err := svc.Update(ctx, alice.ID, r.ID, upd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Rating != 4 || updated.Content != upd.Content || !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := svc.Delete(ctx, alice.ID, r.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, alice.ID, r.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

func TestListReviewsNewestFirst(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	ctx := context.Background()
	first, _ := svc.Create(ctx, alice, ReviewInput{EventID: "e1", Rating: 3, Content: validContent})
	second, _ := svc.Create(ctx, alice, ReviewInput{EventID: "e1", Rating: 4, Content: validContent})
	_, _ = svc.Create(ctx, Author{ID: "u-bob"}, ReviewInput{EventID: "e2", Rating: 5, Content: validContent})

	byEvent, err := svc.ListByEvent(ctx, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if len(byEvent) != 2 || byEvent[0].ID != second.ID || byEvent[1].ID != first.ID {
		t.Errorf("unexpected order for event list")
	}

	byUser, err := svc.ListByUser(ctx, alice.ID)
	if err != nil || len(byUser) != 2 {
		t.Errorf("user list = %d (%v)", len(byUser), err)
	}

	empty, err := svc.ListByEvent(ctx, "none")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("empty list should be non-nil: %v %v", empty, err)
	}
}

func TestReviewStatsRoundsToOneDecimal(t *testing.T) {
	svc := newReviewService(newMemReviewRepo())
	ctx := context.Background()
	for _, rating := range []int{5, 4, 4} {
		if _, err := svc.Create(ctx, alice, ReviewInput{EventID: "e1", Rating: rating, Content: validContent}); err != nil {
			t.Fatal(err)
		}
	}
	stats, err := svc.Stats(ctx, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 3 || stats.Average != 4.3 {
		t.Errorf("stats = %+v, want count 3 average 4.3", stats)
	}

	none, err := svc.Stats(ctx, "e-none")
	if err != nil || none.Count != 0 || none.Average != 0 {
		t.Errorf("empty stats = %+v (%v)", none, err)
	}
}
