package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myblog/internal/models"
)

func TestCreatePostValidation(t *testing.T) {
	_, uow := newTestUOW(t)
	svc := NewPostService(uow)
	ctx := context.Background()

	tests := []struct {
		name string
		post *models.Post
		msg  string
	}{
		{"nil", nil, MsgPostInvalid},
		{"empty content", &models.Post{Title: "t", Content: "", UserID: "u1"}, MsgPostContentEmpty},
		{"empty title", &models.Post{Title: "", Content: "c", UserID: "u1"}, MsgPostTitleEmpty},
		{"blank title", &models.Post{Title: "   ", Content: "c", UserID: "u1"}, MsgPostTitleEmpty},
		{"content checked first", &models.Post{}, MsgPostContentEmpty},
		{"empty user", &models.Post{Title: "t", Content: "c", UserID: " "}, MsgPostUserRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreatePost(ctx, tt.post)
			assert.Nil(t, got)
			requireKind(t, err, KindInvalid, tt.msg)
		})
	}
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	database, uow := newTestUOW(t)
	seedUser(t, database, "u1", "u1@example.com")
	seedUser(t, database, "u2", "u2@example.com")
	svc := NewPostService(uow)
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, &models.Post{Title: "Hello", Content: "one", UserID: "u1"})
	require.NoError(t, err)
	assert.Positive(t, first.ID)

	_, err = svc.CreatePost(ctx, &models.Post{Title: "Hello", Content: "two", UserID: "u1"})
	requireKind(t, err, KindConflict, MsgPostDuplicate)

	other, err := svc.CreatePost(ctx, &models.Post{Title: "Hello", Content: "three", UserID: "u2"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	all, err := svc.GetAllPost(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreatePostUnknownUser(t *testing.T) {
	_, uow := newTestUOW(t)
	svc := NewPostService(uow)

	_, err := svc.CreatePost(context.Background(), &models.Post{Title: "t", Content: "c", UserID: "ghost"})
	requireKind(t, err, KindInvalid, MsgPostMissingUser)
}

func TestUpdatePost(t *testing.T) {
	database, uow := newTestUOW(t)
	seedUser(t, database, "u1", "u1@example.com")
	seedUser(t, database, "u2", "u2@example.com")
	svc := NewPostService(uow)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, &models.Post{Title: "Draft", Content: "v1", UserID: "u1"})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &models.Post{Title: "Taken", Content: "x", UserID: "u1"})
	require.NoError(t, err)

	_, err = svc.UpdatePost(ctx, nil)
	requireKind(t, err, KindInvalid, MsgPostInvalid)
	_, err = svc.UpdatePost(ctx, &models.Post{ID: post.ID, Title: "Final", Content: ""})
	requireKind(t, err, KindInvalid, MsgPostContentEmpty)
	_, err = svc.UpdatePost(ctx, &models.Post{ID: post.ID, Title: "", Content: "v2"})
	requireKind(t, err, KindInvalid, MsgPostTitleEmpty)
	_, err = svc.UpdatePost(ctx, &models.Post{ID: 999, Title: "Final", Content: "v2"})
	requireKind(t, err, KindNotFound, MsgPostMissing)
	_, err = svc.UpdatePost(ctx, &models.Post{ID: post.ID, Title: "Taken", Content: "v2"})
	requireKind(t, err, KindConflict, MsgPostDuplicate)

	updated, err := svc.UpdatePost(ctx, &models.Post{ID: post.ID, Title: "Final", Content: "v2", UserID: "u2"})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, "u1", updated.UserID, "author must not change")
}

func TestDeletePost(t *testing.T) {
	database, uow := newTestUOW(t)
	seedUser(t, database, "u1", "u1@example.com")
	svc := NewPostService(uow)
	likes := NewLikeService(uow)
	ctx := context.Background()

	requireKind(t, svc.DeletePost(ctx, 0), KindInvalid, MsgPostIDInvalid)
	requireKind(t, svc.DeletePost(ctx, 7), KindNotFound, MsgPostNotFound)

	post, err := svc.CreatePost(ctx, &models.Post{Title: "Bye", Content: "c", UserID: "u1"})
	require.NoError(t, err)
	_, err = likes.CreateLike(ctx, &models.Like{UserID: "u1", PostID: post.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	requireKind(t, err, KindNotFound, MsgPostNotFound)

	remaining, err := likes.GetAllLike(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestGetPost(t *testing.T) {
	database, uow := newTestUOW(t)
	seedUser(t, database, "u1", "u1@example.com")
	svc := NewPostService(uow)
	ctx := context.Background()

	_, err := svc.GetPost(ctx, 0)
	requireKind(t, err, KindInvalid, MsgPostIDInvalid)

	created, err := svc.CreatePost(ctx, &models.Post{Title: "Read me", Content: "body", UserID: "u1"})
	require.NoError(t, err)
	got, err := svc.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read me", got.Title)
	assert.Equal(t, "body", got.Content)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestPostStorageFaultPropagates(t *testing.T) {
	svc := NewPostService(brokenUOW{})
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, &models.Post{Title: "t", Content: "c", UserID: "u1"})
	assert.ErrorIs(t, err, errStorage)
	_, err = svc.UpdatePost(ctx, &models.Post{ID: 1, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, errStorage)
	assert.ErrorIs(t, svc.DeletePost(ctx, 1), errStorage)
}
