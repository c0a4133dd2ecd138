package service

import (
	"context"
	"errors"
	"log/slog"

	"myblog/internal/logger"
	"myblog/internal/models"
	"myblog/internal/repository"
)

type PostService struct {
	uow repository.UnitOfWork
}

func NewPostService(uow repository.UnitOfWork) *PostService {
	if uow == nil {
		panic("service: nil unit of work")
	}
	return &PostService{uow: uow}
}

func (s *PostService) log(ctx context.Context, method string) *slog.Logger {
	return logger.From(ctx).With(slog.String("service", "Post"), slog.String("method", method))
}

// validatePost checks the fields both create and update require, in the order
// they are reported.
func validatePost(post *models.Post) *Error {
	if post == nil {
		return invalid(MsgPostInvalid)
	}
	if blank(post.Content) {
		return invalid(MsgPostContentEmpty)
	}
	if blank(post.Title) {
		return invalid(MsgPostTitleEmpty)
	}
	return nil
}

// CreatePost stores a new post. Titles are unique per author.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	l := s.log(ctx, "CreatePost")
	if e := validatePost(post); e != nil {
		return nil, reject(l, e)
	}
	if blank(post.UserID) {
		return nil, reject(l, invalid(MsgPostUserRequired))
	}

	_, err := s.uow.Posts().GetByTitle(ctx, post.UserID, post.Title)
	switch {
	case err == nil:
		return nil, reject(l, conflict(MsgPostDuplicate))
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	created, err := s.uow.Posts().Create(ctx, post)
	switch {
	case errors.Is(err, models.ErrDuplicateTitle):
		return nil, reject(l, conflict(MsgPostDuplicate))
	case errors.Is(err, models.ErrMissingReference):
		return nil, reject(l, invalid(MsgPostMissingUser))
	case err != nil:
		return nil, err
	}
	l.Debug("Post created", slog.Int("id", created.ID))
	return created, nil
}

// UpdatePost replaces the title and content of an existing post. The author
// never changes.
func (s *PostService) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	l := s.log(ctx, "UpdatePost")
	if e := validatePost(post); e != nil {
		return nil, reject(l, e)
	}
	updated, err := s.uow.Posts().Update(ctx, post)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, reject(l, notFound(MsgPostMissing))
	case errors.Is(err, models.ErrDuplicateTitle):
		return nil, reject(l, conflict(MsgPostDuplicate))
	case err != nil:
		return nil, err
	}
	return updated, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int) error {
	l := s.log(ctx, "DeletePost")
	if id <= 0 {
		return reject(l, invalid(MsgPostIDInvalid))
	}
	post, err := s.uow.Posts().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return reject(l, notFound(MsgPostNotFound))
	}
	if err != nil {
		return err
	}
	if err := s.uow.Posts().Delete(ctx, post); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return reject(l, notFound(MsgPostNotFound))
		}
		return err
	}
	return nil
}

func (s *PostService) GetAllPost(ctx context.Context) ([]models.Post, error) {
	return s.uow.Posts().GetAll(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id int) (*models.Post, error) {
	if id <= 0 {
		return nil, invalid(MsgPostIDInvalid)
	}
	post, err := s.uow.Posts().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, notFound(MsgPostNotFound)
	}
	return post, err
}
