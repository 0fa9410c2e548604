package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"megablog/internal/domain"
	jwtsvc "megablog/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubUserLoader struct {
	user *domain.User
	err  error
}

func (s *stubUserLoader) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u := *s.user
	return &u, nil
}

func newAuthRouter(jwt *jwtsvc.Service, loader UserLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SessionAuth(jwt, loader))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt64("user_id")})
	})
	return router
}

func TestSessionAuth_CookieToken(t *testing.T) {
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, _ := jwtService.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")

	loader := &stubUserLoader{user: &domain.User{ID: 42, Username: "aigerim"}}
	router := newAuthRouter(jwtService, loader)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestSessionAuth_BearerToken(t *testing.T) {
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, _ := jwtService.GenerateAccessToken(42, "aigerim", "aigerim@mail.kz")

	loader := &stubUserLoader{user: &domain.User{ID: 42, Username: "aigerim"}}
	router := newAuthRouter(jwtService, loader)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionAuth_MissingToken(t *testing.T) {
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	router := newAuthRouter(jwtService, &stubUserLoader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestSessionAuth_InvalidToken(t *testing.T) {
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	router := newAuthRouter(jwtService, &stubUserLoader{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestSessionAuth_RefreshTokenRejected(t *testing.T) {
	// A refresh token must not open protected routes.
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	refreshToken, _ := jwtService.GenerateRefreshToken(42)

	router := newAuthRouter(jwtService, &stubUserLoader{user: &domain.User{ID: 42}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: refreshToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuth_DeletedUser(t *testing.T) {
	jwtService := jwtsvc.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, _ := jwtService.GenerateAccessToken(42, "ghost", "ghost@mail.kz")

	router := newAuthRouter(jwtService, &stubUserLoader{err: gorm.ErrRecordNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
