package models

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateTitle    = errors.New("post title already exists for user")
	ErrDuplicateLike     = errors.New("like already exists")
	ErrMissingReference  = errors.New("referenced record does not exist")
)

// DBTX is the subset of *sql.DB and *sql.Tx the queries need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// translate maps sqlite constraint failures onto the package sentinels.
func translate(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		str := sqliteErr.Error()
		switch {
		case strings.Contains(str, "users.email"):
			return ErrDuplicateEmail
		case strings.Contains(str, "users.username"):
			return ErrDuplicateUsername
		case strings.Contains(str, "posts."):
			return ErrDuplicateTitle
		case strings.Contains(str, "likes."):
			return ErrDuplicateLike
		}
	case sqlite3.ErrConstraintForeignKey:
		return ErrMissingReference
	}
	return err
}

func noRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const userColumns = `id, first_name, last_name, email, username, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.UserName, &u.PasswordHash, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, db DBTX, u *User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, u.UserName, u.PasswordHash, u.CreatedAt)
	return translate(err)
}

func GetUser(ctx context.Context, db DBTX, id string) (*User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	return u, noRows(err)
}

func GetUserByEmail(ctx context.Context, db DBTX, email string) (*User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	return u, noRows(err)
}

func GetUserByUserName(ctx context.Context, db DBTX, username string) (*User, error) {
	u, err := scanUser(db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	return u, noRows(err)
}

func ListUsers(ctx context.Context, db DBTX) ([]User, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser writes the name and email columns. Username and credentials are
// fixed at registration.
func UpdateUser(ctx context.Context, db DBTX, u *User) error {
	res, err := db.ExecContext(ctx, `UPDATE users SET first_name = ?, last_name = ?, email = ? WHERE id = ?`,
		u.FirstName, u.LastName, u.Email, u.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func DeleteUser(ctx context.Context, db DBTX, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

const postColumns = `id, user_id, title, content, created_at`

func scanPost(row interface{ Scan(...any) error }) (*Post, error) {
	var p Post
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func CreatePost(ctx context.Context, db DBTX, p *Post) (int64, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx, `INSERT INTO posts (user_id, title, content, created_at) VALUES (?, ?, ?, ?)`,
		p.UserID, p.Title, p.Content, p.CreatedAt)
	if err != nil {
		return 0, translate(err)
	}
	return res.LastInsertId()
}

func GetPost(ctx context.Context, db DBTX, id int) (*Post, error) {
	p, err := scanPost(db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id))
	return p, noRows(err)
}

func GetPostByTitle(ctx context.Context, db DBTX, userID, title string) (*Post, error) {
	p, err := scanPost(db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE user_id = ? AND title = ?`, userID, title))
	return p, noRows(err)
}

func ListPosts(ctx context.Context, db DBTX) ([]Post, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	posts := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func UpdatePost(ctx context.Context, db DBTX, p *Post) error {
	res, err := db.ExecContext(ctx, `UPDATE posts SET title = ?, content = ? WHERE id = ?`, p.Title, p.Content, p.ID)
	if err != nil {
		return translate(err)
	}
	return affected(res)
}

func DeletePost(ctx context.Context, db DBTX, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}

const likeColumns = `id, user_id, post_id, created_at`

func scanLike(row interface{ Scan(...any) error }) (*Like, error) {
	var l Like
	if err := row.Scan(&l.ID, &l.UserID, &l.PostID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func CreateLike(ctx context.Context, db DBTX, l *Like) (int64, error) {
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	res, err := db.ExecContext(ctx, `INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, ?)`,
		l.UserID, l.PostID, l.CreatedAt)
	if err != nil {
		return 0, translate(err)
	}
	return res.LastInsertId()
}

func GetLike(ctx context.Context, db DBTX, id int) (*Like, error) {
	l, err := scanLike(db.QueryRowContext(ctx, `SELECT `+likeColumns+` FROM likes WHERE id = ?`, id))
	return l, noRows(err)
}

func GetLikeByUserPost(ctx context.Context, db DBTX, userID string, postID int) (*Like, error) {
	l, err := scanLike(db.QueryRowContext(ctx, `SELECT `+likeColumns+` FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID))
	return l, noRows(err)
}

func ListLikes(ctx context.Context, db DBTX) ([]Like, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+likeColumns+` FROM likes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	likes := []Like{}
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, err
		}
		likes = append(likes, *l)
	}
	return likes, rows.Err()
}

func DeleteLike(ctx context.Context, db DBTX, id int) error {
	res, err := db.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
