package main

import (
	"log"
	"os"

	"megablog/internal/database"
)

// Deleting a user or blog leaves its graph edges behind; this job sweeps
// the orphans. Run it from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	statements := []struct {
		table string
		query string
	}{
		{"follows", `DELETE FROM follows WHERE blogger_id NOT IN (SELECT id FROM users) OR follower_id NOT IN (SELECT id FROM users)`},
		{"likes", `DELETE FROM likes WHERE blog_id NOT IN (SELECT id FROM blogs) OR liked_by_id NOT IN (SELECT id FROM users)`},
		{"comments", `DELETE FROM comments WHERE blog_id NOT IN (SELECT id FROM blogs) OR commented_by_id NOT IN (SELECT id FROM users)`},
		{"saved_blogs", `DELETE FROM saved_blogs WHERE blog_id NOT IN (SELECT id FROM blogs) OR user_id NOT IN (SELECT id FROM users)`},
	}

	for _, s := range statements {
		res := db.Exec(s.query)
		if res.Error != nil {
			log.Fatalf("cleanup %s failed: %v", s.table, res.Error)
		}
		log.Printf("cleanup %s: removed %d orphaned rows", s.table, res.RowsAffected)
	}

	log.Println("graph cleanup completed")
}
