package follow

import (
	"errors"
	"net/http"
	"strconv"

	"megablog/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for the follow graph
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	followGroup := protected.Group("/follow")
	{
		followGroup.POST("/togglefollow/:userid", h.Toggle)
		followGroup.GET("/getallfollowers", h.Followers)
		followGroup.GET("/getfollowing", h.Following)
	}
}

func (h *Handler) Toggle(c *gin.Context) {
	bloggerID, err := strconv.ParseInt(c.Param("userid"), 10, 64)
	if err != nil || bloggerID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid user id")
		return
	}

	followed, err := h.service.Toggle(c.Request.Context(), bloggerID, c.GetInt64("user_id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFollow):
			response.Error(c, http.StatusBadRequest, "SELF_FOLLOW", "You cannot follow yourself")
		case errors.Is(err, ErrNoSuchUser):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such user found")
		default:
			response.Error(c, http.StatusInternalServerError, "TOGGLE_FAILED", "Failed to toggle follow")
		}
		return
	}

	message := "User unfollowed successfully"
	if followed {
		message = "User followed successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"followed": followed}, message)
}

func (h *Handler) Followers(c *gin.Context) {
	viewerID := c.GetInt64("user_id")

	entries, err := h.service.Followers(c.Request.Context(), viewerID, viewerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch followers")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"followers": entries}, "Followers fetched successfully")
}

func (h *Handler) Following(c *gin.Context) {
	viewerID := c.GetInt64("user_id")

	entries, err := h.service.Following(c.Request.Context(), viewerID, viewerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch following list")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"following": entries}, "Following list fetched successfully")
}
