package like

import (
	"errors"
	"net/http"
	"strconv"

	"megablog/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for likes
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	likeGroup := protected.Group("/like")
	{
		likeGroup.POST("/:blogid", h.Toggle)
		likeGroup.GET("/getbloglikes/:blogid", h.ListForBlog)
	}
}

func (h *Handler) Toggle(c *gin.Context) {
	blogID, ok := paramBlogID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	liked, count, err := h.service.Toggle(c.Request.Context(), blogID, c.GetInt64("user_id"))
	if err != nil {
		h.writeLikeError(c, err, "Failed to toggle like")
		return
	}

	message := "Blog unliked successfully"
	if liked {
		message = "Blog liked successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"liked": liked, "likeCount": count}, message)
}

func (h *Handler) ListForBlog(c *gin.Context) {
	blogID, ok := paramBlogID(c)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	entries, count, err := h.service.ListForBlog(c.Request.Context(), blogID, c.GetInt64("user_id"))
	if err != nil {
		h.writeLikeError(c, err, "Failed to fetch likes")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"likes": entries, "likeCount": count}, "Likes fetched successfully")
}

func (h *Handler) writeLikeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNoSuchBlog):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such blog found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this blog")
	default:
		response.Error(c, http.StatusInternalServerError, "LIKE_ERROR", fallback)
	}
}

func paramBlogID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("blogid"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
