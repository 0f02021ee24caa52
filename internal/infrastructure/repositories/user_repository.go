package repositories

import (
	"context"
	"strings"
	"time"

	"vidhub/internal/domain/entities"
	"vidhub/internal/domain/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &userRepository{db: db}
}

// FindOrCreateByEmail inserts the user if missing. Concurrent first requests
// for the same email collapse on the unique email index.
func (r *userRepository) FindOrCreateByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC()
	candidate := entities.User{ID: uuid.New(), Email: email, CreatedAt: now, UpdatedAt: now}

	tx := r.db.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&candidate).Error; err != nil {
		return nil, err
	}

	var user entities.User
	if err := tx.First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
