package models

import "time"

type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateUserRequest is the registration payload. Password is plain text and
// only ever reaches the repository, which stores its bcrypt hash.
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"notblank,email"`
	Password  string `json:"password" validate:"notblank"`
}

type Post struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Like struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	PostID    int       `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}
