package api

import (
	"context"
	"net/http"

	"CultureSync/internal/model"
	"CultureSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookmarkManager 书签读写（service.BookmarkService 实现）
type BookmarkManager interface {
	Add(ctx context.Context, userID string, in service.BookmarkInput) (*model.Bookmark, error)
	Remove(ctx context.Context, userID, eventID string) (bool, error)
	List(ctx context.Context, userID string) ([]*model.Bookmark, error)
	IsBookmarked(ctx context.Context, userID, eventID string) (bool, error)
}

type BookmarkHandler struct {
	bookmarks BookmarkManager
	logger    *logrus.Logger
}

func NewBookmarkHandler(bookmarks BookmarkManager, logger *logrus.Logger) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks, logger: logger}
}

// List GET /api/users/me/bookmarks
func (h *BookmarkHandler) List(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	list, err := h.bookmarks.List(c.Request.Context(), author.ID)
	if err != nil {
		writeError(c, h.logger, "ListBookmarks", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookmarks": list, "total": len(list)})
}

// Add POST /api/users/me/bookmarks（幂等）
func (h *BookmarkHandler) Add(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	var req service.BookmarkInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	b, err := h.bookmarks.Add(c.Request.Context(), author.ID, req)
	if err != nil {
		writeError(c, h.logger, "AddBookmark", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Check GET /api/users/me/bookmarks/:event_id
func (h *BookmarkHandler) Check(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	eventID := c.Param("event_id")
	bookmarked, err := h.bookmarks.IsBookmarked(c.Request.Context(), author.ID, eventID)
	if err != nil {
		writeError(c, h.logger, "CheckBookmark", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventId": eventID, "bookmarked": bookmarked})
}

// Remove DELETE /api/users/me/bookmarks/:event_id
func (h *BookmarkHandler) Remove(c *gin.Context) {
	author, ok := requireAuthor(c)
	if !ok {
		return
	}
	eventID := c.Param("event_id")
	removed, err := h.bookmarks.Remove(c.Request.Context(), author.ID, eventID)
	if err != nil {
		writeError(c, h.logger, "RemoveBookmark", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventId": eventID, "removed": removed})
}
