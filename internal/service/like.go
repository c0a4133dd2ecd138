package service

import (
	"context"
	"errors"
	"log/slog"

	"myblog/internal/logger"
	"myblog/internal/models"
	"myblog/internal/repository"
)

type LikeService struct {
	uow repository.UnitOfWork
}

func NewLikeService(uow repository.UnitOfWork) *LikeService {
	if uow == nil {
		panic("service: nil unit of work")
	}
	return &LikeService{uow: uow}
}

func (s *LikeService) log(ctx context.Context, method string) *slog.Logger {
	return logger.From(ctx).With(slog.String("service", "Like"), slog.String("method", method))
}

// CreateLike records that like.UserID likes like.PostID. A user can like a
// post at most once.
func (s *LikeService) CreateLike(ctx context.Context, like *models.Like) (*models.Like, error) {
	l := s.log(ctx, "CreateLike")
	if like == nil {
		return nil, reject(l, invalid(MsgLikeInvalid))
	}
	if blank(like.UserID) {
		return nil, reject(l, invalid(MsgLikeUserRequired))
	}
	if like.PostID <= 0 {
		return nil, reject(l, invalid(MsgLikePostInvalid))
	}

	_, err := s.uow.Likes().GetByUserPost(ctx, like.UserID, like.PostID)
	switch {
	case err == nil:
		return nil, reject(l, conflict(MsgLikeDuplicate))
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	created, err := s.uow.Likes().Create(ctx, like)
	switch {
	case errors.Is(err, models.ErrDuplicateLike):
		// lost a race with a concurrent create for the same pair
		return nil, reject(l, conflict(MsgLikeDuplicate))
	case errors.Is(err, models.ErrMissingReference):
		return nil, reject(l, invalid(MsgLikeMissingRef))
	case err != nil:
		return nil, err
	}
	l.Debug("Like created", slog.Int("id", created.ID))
	return created, nil
}

func (s *LikeService) DeleteLike(ctx context.Context, id int) error {
	l := s.log(ctx, "DeleteLike")
	if id <= 0 {
		return reject(l, invalid(MsgLikeIDInvalid))
	}
	like, err := s.uow.Likes().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return reject(l, notFound(MsgLikeNotFound))
	}
	if err != nil {
		return err
	}
	if err := s.uow.Likes().Delete(ctx, like); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return reject(l, notFound(MsgLikeNotFound))
		}
		return err
	}
	return nil
}

func (s *LikeService) GetAllLike(ctx context.Context) ([]models.Like, error) {
	return s.uow.Likes().GetAll(ctx)
}

func (s *LikeService) GetLike(ctx context.Context, id int) (*models.Like, error) {
	if id <= 0 {
		return nil, invalid(MsgLikeIDInvalid)
	}
	like, err := s.uow.Likes().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, notFound(MsgLikeNotFound)
	}
	return like, err
}
