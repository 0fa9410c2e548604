package user

import (
	"errors"
	"net/http"
	"strconv"

	"megablog/internal/middleware"
	"megablog/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// CookieConfig carries the session cookie attributes resolved at startup.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
	// MaxAge in seconds for the refresh cookie; the access cookie uses the
	// same lifetime so browsers drop both together.
	MaxAge int
}

// Handler manages all HTTP interactions for accounts and sessions
type Handler struct {
	service *Service
	cookies CookieConfig
}

func NewHandler(service *Service, cookies CookieConfig) *Handler {
	return &Handler{service: service, cookies: cookies}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	userGroup := v1.Group("/user")
	{
		userGroup.POST("/register", h.Register)
		userGroup.POST("/login", h.Login)
		userGroup.POST("/refreshingtoken", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/user")
	{
		userGroup.POST("/logout", h.Logout)
		userGroup.GET("/", h.GetProfile)
		userGroup.GET("/getuser/:userId", h.GetUser)
		userGroup.GET("/favouriteblogs", h.GetFavouriteBlogs)
		userGroup.PATCH("/updateuser", h.UpdateDetails)
		userGroup.PATCH("/updateavatar", h.UpdateAvatar)
		userGroup.PATCH("/updatecoverimage", h.UpdateCoverImage)
		userGroup.PATCH("/changepassword", h.ChangePassword)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required")
		return
	}

	avatar, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Avatar is required")
		return
	}

	created, err := h.service.Register(c.Request.Context(), req, avatar)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserExists):
			response.Error(c, http.StatusConflict, "USER_EXISTS", "Username or email already registered")
		case errors.Is(err, ErrAvatarRequired):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Avatar is required")
		default:
			response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		}
		return
	}

	response.Success(c, http.StatusOK, created, "User registration successful")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Password is required")
		return
	}
	if req.Username == "" && req.Email == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Username or email is required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSuchUser):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such user found")
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Password invalid")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		}
		return
	}

	h.setSessionCookies(c, result.AccessToken, result.RefreshToken)
	response.Success(c, http.StatusOK, gin.H{"user": result.User}, "User login successful")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), c.GetInt64("user_id")); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.clearSessionCookies(c)
	response.Success(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

func (h *Handler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refreshToken")
	if err != nil || refreshToken == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "No refresh token provided")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Refresh token expired or already used")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		return
	}

	h.setSessionCookies(c, pair.AccessToken, pair.RefreshToken)
	response.Success(c, http.StatusOK, pair, "Token refreshed successfully")
}

func (h *Handler) GetProfile(c *gin.Context) {
	viewerID := c.GetInt64("user_id")

	profile, err := h.service.Profile(c.Request.Context(), viewerID, viewerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to fetch profile")
		return
	}

	response.Success(c, http.StatusOK, profile, "Data fetched successfully")
}

func (h *Handler) GetUser(c *gin.Context) {
	subjectID, ok := paramID(c, "userId")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Not a valid user id")
		return
	}

	profile, err := h.service.Profile(c.Request.Context(), subjectID, c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, ErrNoSuchUser) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No such user found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to fetch user")
		return
	}

	response.Success(c, http.StatusOK, profile, "User fetched successfully")
}

func (h *Handler) GetFavouriteBlogs(c *gin.Context) {
	blogs, err := h.service.FavouriteBlogs(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to fetch favourite blogs")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"favouriteBlogs": blogs}, "Blogs fetched successfully")
}

func (h *Handler) UpdateDetails(c *gin.Context) {
	var req UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required")
		return
	}

	updated, err := h.service.UpdateDetails(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update user details")
		return
	}

	response.Success(c, http.StatusOK, updated, "User details updated successfully")
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file found")
		return
	}

	updated, err := h.service.UpdateAvatar(c.Request.Context(), c.GetInt64("user_id"), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to update avatar")
		return
	}

	response.Success(c, http.StatusOK, updated, "Avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(c *gin.Context) {
	file, err := c.FormFile("coverImg")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "No file found")
		return
	}

	updated, err := h.service.UpdateCoverImage(c.Request.Context(), c.GetInt64("user_id"), file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to update cover image")
		return
	}

	response.Success(c, http.StatusOK, updated, "Cover image updated successfully")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "All required fields must be filled")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid current password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to change password")
		return
	}

	user, _ := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, user, "Password updated successfully")
}

func (h *Handler) setSessionCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie("accessToken", accessToken, h.cookies.MaxAge, "/", "", h.cookies.Secure, true)
	c.SetCookie("refreshToken", refreshToken, h.cookies.MaxAge, "/", "", h.cookies.Secure, true)
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie("accessToken", "", -1, "/", "", h.cookies.Secure, true)
	c.SetCookie("refreshToken", "", -1, "/", "", h.cookies.Secure, true)
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
