package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"megablog/internal/config"
	"megablog/internal/database"
	"megablog/internal/middleware"
	"megablog/internal/modules/blog"
	"megablog/internal/modules/comment"
	"megablog/internal/modules/follow"
	"megablog/internal/modules/like"
	"megablog/internal/modules/user"
	jwtsvc "megablog/internal/pkg/jwt"
	"megablog/internal/repository"
	"megablog/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	media := storage.NewDiskStore(cfg.MediaDir, cfg.MediaURLBase)
	tokens := jwtsvc.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	userService := user.NewService(userRepo, followRepo, blogRepo, tokens, media)
	userHandler := user.NewHandler(userService, user.CookieConfig{
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFor(cfg.CookieSameSite),
		MaxAge:   int(cfg.RefreshTTL.Seconds()),
	})

	blogService := blog.NewService(blogRepo, userRepo, followRepo, likeRepo, commentRepo, media)
	blogHandler := blog.NewHandler(blogService)

	followService := follow.NewService(followRepo, userRepo)
	followHandler := follow.NewHandler(followService)

	likeService := like.NewService(likeRepo, blogRepo)
	likeHandler := like.NewHandler(likeService)

	feedHub := comment.NewHub()
	defer feedHub.Close()

	commentService := comment.NewService(commentRepo, blogRepo, userRepo, feedHub)
	commentHandler := comment.NewHandler(commentService, feedHub)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.BodyLimit())

	r.Static(cfg.MediaURLBase, media.BaseDir())

	v1 := r.Group("/api/v1")
	{
		userHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.SessionAuth(tokens, userRepo))
		{
			userHandler.RegisterProtectedRoutes(protected)
			blogHandler.RegisterProtectedRoutes(protected)
			followHandler.RegisterProtectedRoutes(protected)
			likeHandler.RegisterProtectedRoutes(protected)
			commentHandler.RegisterProtectedRoutes(protected)
		}
	}

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}

func sameSiteFor(name string) http.SameSite {
	switch strings.ToLower(name) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
