package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrDuplicate is returned when an insert violates a unique index: a second
// registration with a taken username/email, or a toggle edge that lost a
// race to a concurrent duplicate request.
var ErrDuplicate = errors.New("record already exists")

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&savedBlogModel{},
		&blogModel{},
		&followModel{},
		&likeModel{},
		&commentModel{},
	)
}
