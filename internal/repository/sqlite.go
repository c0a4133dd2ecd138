package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"myblog/internal/models"
)

// SQLite is the UnitOfWork backed by the database opened with db.Open.
type SQLite struct {
	users *userRepo
	posts *postRepo
	likes *likeRepo
}

func New(db *sql.DB) *SQLite {
	return &SQLite{
		users: &userRepo{db: db, cost: bcrypt.DefaultCost},
		posts: &postRepo{db: db},
		likes: &likeRepo{db: db},
	}
}

// WithPasswordCost overrides the bcrypt cost, mainly so tests stay fast.
func (s *SQLite) WithPasswordCost(cost int) *SQLite {
	s.users.cost = cost
	return s
}

func (s *SQLite) Users() UserRepository { return s.users }
func (s *SQLite) Posts() PostRepository { return s.posts }
func (s *SQLite) Likes() LikeRepository { return s.likes }

type userRepo struct {
	db   *sql.DB
	cost int
}

func (r *userRepo) Get(ctx context.Context, id string) (*models.User, error) {
	return models.GetUser(ctx, r.db, id)
}

func (r *userRepo) GetAll(ctx context.Context) ([]models.User, error) {
	return models.ListUsers(ctx, r.db)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return models.GetUserByEmail(ctx, r.db, email)
}

func (r *userRepo) GetByUserName(ctx context.Context, username string) (*models.User, error) {
	return models.GetUserByUserName(ctx, r.db, username)
}

func (r *userRepo) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := *user
	u.ID = uuid.NewString()
	u.PasswordHash = string(hash)
	if err := models.CreateUser(ctx, r.db, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := models.UpdateUser(ctx, r.db, user); err != nil {
		return nil, err
	}
	return models.GetUser(ctx, r.db, user.ID)
}

func (r *userRepo) Delete(ctx context.Context, user *models.User) error {
	return models.DeleteUser(ctx, r.db, user.ID)
}

type postRepo struct {
	db *sql.DB
}

func (r *postRepo) Get(ctx context.Context, id int) (*models.Post, error) {
	return models.GetPost(ctx, r.db, id)
}

func (r *postRepo) GetAll(ctx context.Context) ([]models.Post, error) {
	return models.ListPosts(ctx, r.db)
}

func (r *postRepo) GetByTitle(ctx context.Context, userID, title string) (*models.Post, error) {
	return models.GetPostByTitle(ctx, r.db, userID, title)
}

func (r *postRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	p := *post
	id, err := models.CreatePost(ctx, r.db, &p)
	if err != nil {
		return nil, err
	}
	p.ID = int(id)
	return &p, nil
}

func (r *postRepo) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	if err := models.UpdatePost(ctx, r.db, post); err != nil {
		return nil, err
	}
	return models.GetPost(ctx, r.db, post.ID)
}

func (r *postRepo) Delete(ctx context.Context, post *models.Post) error {
	return models.DeletePost(ctx, r.db, post.ID)
}

type likeRepo struct {
	db *sql.DB
}

func (r *likeRepo) Get(ctx context.Context, id int) (*models.Like, error) {
	return models.GetLike(ctx, r.db, id)
}

func (r *likeRepo) GetAll(ctx context.Context) ([]models.Like, error) {
	return models.ListLikes(ctx, r.db)
}

func (r *likeRepo) GetByUserPost(ctx context.Context, userID string, postID int) (*models.Like, error) {
	return models.GetLikeByUserPost(ctx, r.db, userID, postID)
}

func (r *likeRepo) Create(ctx context.Context, like *models.Like) (*models.Like, error) {
	l := *like
	id, err := models.CreateLike(ctx, r.db, &l)
	if err != nil {
		return nil, err
	}
	l.ID = int(id)
	return &l, nil
}

func (r *likeRepo) Delete(ctx context.Context, like *models.Like) error {
	return models.DeleteLike(ctx, r.db, like.ID)
}
