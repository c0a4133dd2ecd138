package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"myblog/internal/db"
	"myblog/internal/models"
	"myblog/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func newTestUOW(t *testing.T) (*sql.DB, repository.UnitOfWork) {
	t.Helper()
	database := openTestDB(t)
	return database, repository.New(database).WithPasswordCost(bcrypt.MinCost)
}

// seedUser inserts a user with a fixed id, bypassing the service.
func seedUser(t *testing.T, database *sql.DB, id, email string) {
	t.Helper()
	err := models.CreateUser(context.Background(), database, &models.User{
		ID: id, FirstName: "First", LastName: "Last", Email: email, UserName: email, PasswordHash: "x",
	})
	require.NoError(t, err)
}

// seedPost inserts a post with a fixed id.
func seedPost(t *testing.T, database *sql.DB, id int, userID, title string) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO posts (id, user_id, title, content, created_at) VALUES (?, ?, ?, 'body', CURRENT_TIMESTAMP)`, id, userID, title)
	require.NoError(t, err)
}

func requireKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var e *Error
	require.True(t, errors.As(err, &e), "expected *service.Error, got %T: %v", err, err)
	require.Equal(t, kind, e.Kind)
	require.Equal(t, msg, e.Message)
}

var errStorage = errors.New("disk on fire")

// brokenUOW fails every read so fault propagation can be checked.
type brokenUOW struct{}

func (brokenUOW) Users() repository.UserRepository { return brokenUsers{} }
func (brokenUOW) Posts() repository.PostRepository { return brokenPosts{} }
func (brokenUOW) Likes() repository.LikeRepository { return brokenLikes{} }

type brokenUsers struct{}

func (brokenUsers) Get(context.Context, string) (*models.User, error) {
	return nil, errStorage
}

func (brokenUsers) GetAll(context.Context) ([]models.User, error) {
	return nil, errStorage
}

func (brokenUsers) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, errStorage
}

func (brokenUsers) GetByUserName(context.Context, string) (*models.User, error) {
	return nil, errStorage
}

func (brokenUsers) Create(context.Context, *models.User, string) (*models.User, error) {
	return nil, errStorage
}

func (brokenUsers) Update(context.Context, *models.User) (*models.User, error) {
	return nil, errStorage
}

func (brokenUsers) Delete(context.Context, *models.User) error {
	return errStorage
}

type brokenPosts struct{}

func (brokenPosts) Get(context.Context, int) (*models.Post, error) {
	return nil, errStorage
}

func (brokenPosts) GetAll(context.Context) ([]models.Post, error) {
	return nil, errStorage
}

func (brokenPosts) GetByTitle(context.Context, string, string) (*models.Post, error) {
	return nil, errStorage
}

func (brokenPosts) Create(context.Context, *models.Post) (*models.Post, error) {
	return nil, errStorage
}

func (brokenPosts) Update(context.Context, *models.Post) (*models.Post, error) {
	return nil, errStorage
}

func (brokenPosts) Delete(context.Context, *models.Post) error {
	return errStorage
}

type brokenLikes struct{}

func (brokenLikes) Get(context.Context, int) (*models.Like, error) {
	return nil, errStorage
}

func (brokenLikes) GetAll(context.Context) ([]models.Like, error) {
	return nil, errStorage
}

func (brokenLikes) GetByUserPost(context.Context, string, int) (*models.Like, error) {
	return nil, errStorage
}

func (brokenLikes) Create(context.Context, *models.Like) (*models.Like, error) {
	return nil, errStorage
}

func (brokenLikes) Delete(context.Context, *models.Like) error {
	return errStorage
}
