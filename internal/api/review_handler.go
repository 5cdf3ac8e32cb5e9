package api

import (
	"context"
	"net/http"

	"CultureSync/internal/model"
	"CultureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ReviewManager 评价读写（service.ReviewService 实现）
type ReviewManager interface {
	Create(ctx context.Context, author service.Author, in service.ReviewInput) (*model.Review, error)
	Update(ctx context.Context, userID, id string, in service.ReviewUpdate) (*model.Review, error)
	Delete(ctx context.Context, userID, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]*model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Review, error)
	Stats(ctx context.Context, eventID string) (*service.ReviewStats, error)
}

type ReviewHandler struct {
	reviews ReviewManager
	logger  *logrus.Logger
}

func NewReviewHandler(reviews ReviewManager, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// ListByEvent GET /api/events/:id/reviews
func (h *ReviewHandler) ListByEvent(c *gin.Context) {
	list, err := h.reviews.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "ListReviewsByEvent", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "total": len(list)})
}

// Stats GET /api/events/:id/reviews/stats
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.reviews.Stats(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "ReviewStats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListMine GET /api/users/me/reviews
func (h *ReviewHandler) ListMine(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	list, err := h.reviews.ListByUser(c.Request.Context(), author.ID)
	if err != nil {
		writeError(c, h.logger, "ListReviewsByUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": list, "total": len(list)})
}

// Create POST /api/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	var req service.ReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	r, err := h.reviews.Create(c.Request.Context(), author, req)
	if err != nil {
		writeError(c, h.logger, "CreateReview", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// Update PUT /api/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	var req service.ReviewUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	r, err := h.reviews.Update(c.Request.Context(), author.ID, c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, "UpdateReview", err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// Delete DELETE /api/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	if err := h.reviews.Delete(c.Request.Context(), author.ID, c.Param("id")); err != nil {
		writeError(c, h.logger, "DeleteReview", err)
		return
	}
	c.Status(http.StatusNoContent)
}
