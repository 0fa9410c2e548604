package comment

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"megablog/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler manages all HTTP interactions for comments, including the
// per-blog WebSocket feed.
type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	commentGroup := protected.Group("/comment")
	{
		commentGroup.POST("/:blogid", h.Add)
		commentGroup.GET("/:blogid", h.ListForBlog)
		commentGroup.GET("/:blogid/feed", h.Feed)
		commentGroup.PATCH("/:commentid", h.Update)
		commentGroup.DELETE("/:commentid", h.Delete)
	}
}

func (h *Handler) Add(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content is required")
		return
	}

	entry, err := h.service.Add(c.Request.Context(), blogID, c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content is required")
			return
		}
		h.writeCommentError(c, err, "Failed to add comment")
		return
	}

	response.Success(c, http.StatusOK, entry, "Comment added successfully")
}

func (h *Handler) ListForBlog(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	entries, count, err := h.service.ListForBlog(c.Request.Context(), blogID, c.GetInt64("user_id"))
	if err != nil {
		h.writeCommentError(c, err, "Failed to fetch comments")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"comments": entries, "commentCount": count}, "Comments fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	commentID, ok := paramID(c, "commentid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid comment id")
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content is required")
		return
	}

	entry, err := h.service.Update(c.Request.Context(), commentID, c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrEmptyContent) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Content is required")
			return
		}
		h.writeCommentError(c, err, "Failed to update comment")
		return
	}

	response.Success(c, http.StatusOK, entry, "Comment updated successfully")
}

func (h *Handler) Delete(c *gin.Context) {
	commentID, ok := paramID(c, "commentid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid comment id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), commentID, c.GetInt64("user_id")); err != nil {
		h.writeCommentError(c, err, "Failed to delete comment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}

// Feed upgrades the request and streams comment events for one blog until
// the client goes away. Session auth already ran, so the cookie (or bearer
// header) was checked before the upgrade.
func (h *Handler) Feed(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	viewerID := c.GetInt64("user_id")
	if err := h.service.CanSubscribe(c.Request.Context(), blogID, viewerID); err != nil {
		h.writeCommentError(c, err, "Failed to open comment feed")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	h.hub.ServeFeed(blogID, conn)
}

func (h *Handler) writeCommentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNoSuchBlog):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such blog found")
	case errors.Is(err, ErrNoSuchComment):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such comment found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this resource")
	default:
		response.Error(c, http.StatusInternalServerError, "COMMENT_ERROR", fallback)
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
