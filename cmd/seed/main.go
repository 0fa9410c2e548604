package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"megablog/internal/database"
	"megablog/internal/domain"
	"megablog/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "megablog.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data, edges before rows
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM likes")
	db.Exec("DELETE FROM follows")
	db.Exec("DELETE FROM saved_blogs")
	db.Exec("DELETE FROM blogs")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	blogs := repository.NewBlogRepository(db)
	follows := repository.NewFollowRepository(db)
	likes := repository.NewLikeRepository(db)
	comments := repository.NewCommentRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	names := [][2]string{{"Aigerim", "Seitova"}, {"Marat", "Ospanov"}, {"Leila", "Nurtas"}}
	seeded := make([]*domain.User, 0, len(names))
	for i, n := range names {
		hash, _ := bcrypt.GenerateFromPassword([]byte("blogger123"), bcrypt.DefaultCost)
		u := &domain.User{
			FirstName:    n[0],
			LastName:     n[1],
			Username:     fmt.Sprintf("blogger%d", i+1),
			Email:        fmt.Sprintf("blogger%d@megablog.kz", i+1),
			PasswordHash: string(hash),
			AvatarURL:    fmt.Sprintf("/static/uploads/seed/avatar%d.png", i+1),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("user seed failed:", err)
		}
		seeded = append(seeded, u)
		log.Printf("User created: %s / blogger123", u.Email)
	}

	// ================== BLOGS ==================
	log.Println("Creating blogs...")

	titles := []string{
		"A week in the Altai mountains",
		"Why I switched to film photography",
		"Street food notes from Almaty",
		"Draft: unfinished thoughts",
	}
	seededBlogs := make([]*domain.Blog, 0, len(titles))
	for i, title := range titles {
		b := &domain.Blog{
			AuthorID:    seeded[i%len(seeded)].ID,
			Title:       title,
			Content:     fmt.Sprintf("Long form content for %q goes here.", title),
			Images:      []string{fmt.Sprintf("/static/uploads/seed/blog%d.jpg", i+1)},
			IsPublished: i != len(titles)-1,
		}
		if err := blogs.Create(ctx, b); err != nil {
			log.Fatal("blog seed failed:", err)
		}
		seededBlogs = append(seededBlogs, b)
	}

	// ================== GRAPH ==================
	log.Println("Creating follows, likes and comments...")

	if _, err := follows.Create(ctx, seeded[0].ID, seeded[1].ID); err != nil {
		log.Fatal("follow seed failed:", err)
	}
	if _, err := follows.Create(ctx, seeded[0].ID, seeded[2].ID); err != nil {
		log.Fatal("follow seed failed:", err)
	}
	if _, err := follows.Create(ctx, seeded[1].ID, seeded[0].ID); err != nil {
		log.Fatal("follow seed failed:", err)
	}

	if _, err := likes.Create(ctx, seededBlogs[0].ID, seeded[1].ID); err != nil {
		log.Fatal("like seed failed:", err)
	}
	if _, err := likes.Create(ctx, seededBlogs[0].ID, seeded[2].ID); err != nil {
		log.Fatal("like seed failed:", err)
	}

	comment := &domain.Comment{
		BlogID:        seededBlogs[0].ID,
		CommentedByID: seeded[1].ID,
		Content:       "Great write-up, the photos are stunning.",
	}
	if err := comments.Create(ctx, comment); err != nil {
		log.Fatal("comment seed failed:", err)
	}

	log.Println("Seed complete.")
}
