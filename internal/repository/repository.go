// Package repository is the persistence boundary the services depend on. A
// UnitOfWork hands out one repository per entity; absence is always reported
// as models.ErrNotFound.
package repository

import (
	"context"

	"myblog/internal/models"
)

type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUserName(ctx context.Context, username string) (*models.User, error)
	// Create assigns the ID and stores a hash of password as the credential.
	Create(ctx context.Context, user *models.User, password string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, user *models.User) error
}

type PostRepository interface {
	Get(ctx context.Context, id int) (*models.Post, error)
	GetAll(ctx context.Context) ([]models.Post, error)
	GetByTitle(ctx context.Context, userID, title string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, post *models.Post) error
}

type LikeRepository interface {
	Get(ctx context.Context, id int) (*models.Like, error)
	GetAll(ctx context.Context) ([]models.Like, error)
	GetByUserPost(ctx context.Context, userID string, postID int) (*models.Like, error)
	Create(ctx context.Context, like *models.Like) (*models.Like, error)
	Delete(ctx context.Context, like *models.Like) error
}

type UnitOfWork interface {
	Users() UserRepository
	Posts() PostRepository
	Likes() LikeRepository
}
