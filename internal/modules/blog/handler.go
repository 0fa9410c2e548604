package blog

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"megablog/internal/pkg/response"
	"megablog/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler manages all HTTP interactions for blogs
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	blogGroup := protected.Group("/blog")
	{
		blogGroup.POST("/createblog", h.Create)
		blogGroup.GET("/getblog", h.List)
		blogGroup.GET("/getblog/:blogid", h.GetByID)
		blogGroup.PATCH("/updateblog/:blogid", h.Update)
		blogGroup.PATCH("/toggleblogpublish/:blogid", h.TogglePublish)
		blogGroup.PATCH("/bsave/:blogid", h.Save)
		blogGroup.PATCH("/bremove/:blogid", h.Unsave)
		blogGroup.DELETE("/deleteblog/:blogid", h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and content are required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Multipart form expected")
		return
	}
	images := form.File["blogImg"]

	created, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req, images)
	if err != nil {
		if errors.Is(err, ErrNoImages) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "At least one blog image is required")
			return
		}
		if errors.Is(err, ErrTooManyFiles) {
			response.Error(c, http.StatusBadRequest, "TOO_MANY_FILES", "At most 3 images per blog")
			return
		}
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create blog")
		return
	}

	response.Success(c, http.StatusOK, created, "Blog created successfully")
}

func (h *Handler) GetByID(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), blogID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBlogError(c, err, "Failed to fetch blog")
		return
	}

	response.Success(c, http.StatusOK, detail, "Blog fetched successfully")
}

func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}

	result, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch blogs")
		return
	}

	response.Success(c, http.StatusOK, result, "Blogs fetched successfully")
}

func (h *Handler) Update(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid update payload")
		return
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Title and content cannot be blank")
		return
	}

	var images []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		images = form.File["blogImg"]
	}

	updated, err := h.service.Update(c.Request.Context(), blogID, c.GetInt64("user_id"), req, images)
	if err != nil {
		if errors.Is(err, ErrTooManyFiles) {
			response.Error(c, http.StatusBadRequest, "TOO_MANY_FILES", "At most 3 images per blog")
			return
		}
		h.writeBlogError(c, err, "Failed to update blog")
		return
	}

	response.Success(c, http.StatusOK, updated, "Blog updated successfully")
}

func (h *Handler) TogglePublish(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	updated, err := h.service.TogglePublish(c.Request.Context(), blogID, c.GetInt64("user_id"))
	if err != nil {
		h.writeBlogError(c, err, "Failed to toggle publish state")
		return
	}

	response.Success(c, http.StatusOK, updated, "Publish state toggled successfully")
}

func (h *Handler) Save(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	if err := h.service.Save(c.Request.Context(), blogID, c.GetInt64("user_id")); err != nil {
		h.writeBlogError(c, err, "Failed to save blog")
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Blog saved successfully")
}

func (h *Handler) Unsave(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	if err := h.service.Unsave(c.Request.Context(), blogID, c.GetInt64("user_id")); err != nil {
		if errors.Is(err, ErrNotSaved) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Blog is not in saved list")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REMOVE_FAILED", "Failed to remove saved blog")
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Blog removed from saved list")
}

func (h *Handler) Delete(c *gin.Context) {
	blogID, ok := paramID(c, "blogid")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid blog id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), blogID, c.GetInt64("user_id")); err != nil {
		h.writeBlogError(c, err, "Failed to delete blog")
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "Blog deleted successfully")
}

func (h *Handler) writeBlogError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such blog found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You do not have access to this blog")
	default:
		response.Error(c, http.StatusInternalServerError, "BLOG_ERROR", fallback)
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
