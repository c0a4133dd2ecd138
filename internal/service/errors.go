package service

import (
	"errors"
	"log/slog"
	"strings"
)

// Kind classifies a rejected operation so callers can react without parsing
// messages.
type Kind int

const (
	KindInvalid Kind = iota + 1
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a business rule rejection. Storage faults are never wrapped in
// an Error; they are returned as-is.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf reports the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalid(msg string) *Error  { return &Error{Kind: KindInvalid, Message: msg} }
func notFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) *Error { return &Error{Kind: KindConflict, Message: msg} }

func reject(l *slog.Logger, e *Error) *Error {
	l.Warn("Rejected", slog.String("kind", e.Kind.String()), slog.String("reason", e.Message))
	return e
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

const (
	MsgLikeInvalid        = "Like data is invalid."
	MsgLikeUserRequired   = "User ID cannot be empty or whitespace."
	MsgLikePostInvalid    = "Invalid Post ID."
	MsgLikeDuplicate      = "User has already liked this post."
	MsgLikeMissingRef     = "Referenced user or post does not exist."
	MsgLikeCreated        = "Like created successfully."
	MsgLikeIDInvalid      = "Invalid like ID."
	MsgLikeNotFound       = "Like not found."
	MsgLikeDeleted        = "Like successfully deleted."
	MsgPostInvalid        = "Invalid post data."
	MsgPostContentEmpty   = "Content cannot be empty."
	MsgPostTitleEmpty     = "Title cannot be empty."
	MsgPostUserRequired   = "User ID cannot be empty."
	MsgPostDuplicate      = "A post with this title already exists."
	MsgPostMissingUser    = "Referenced user does not exist."
	MsgPostCreated        = "Post created successfully."
	MsgPostIDInvalid      = "Invalid post ID."
	MsgPostNotFound       = "Post not found."
	MsgPostDeleted        = "Post deleted successfully."
	MsgPostMissing        = "Post does not exist."
	MsgPostUpdated        = "Post updated successfully."
	MsgUserNil            = "User data cannot be null."
	MsgUserFieldsRequired = "First name, last name, email and password are required."
	MsgUserEmailInvalid   = "Email address is invalid."
	MsgUserNameRequired   = "First name, last name and email are required."
	MsgUserDuplicate      = "A user with this email already exists."
	MsgUserNameTaken      = "A user with this username already exists."
	MsgUserIDInvalid      = "Invalid user ID."
	MsgUserNotFound       = "User not found."
	MsgUserCreated        = "User created successfully."
	MsgUserUpdated        = "User updated successfully."
	MsgUserDeleted        = "User deleted successfully."
)
