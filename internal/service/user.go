package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"myblog/internal/logger"
	"myblog/internal/mapper"
	"myblog/internal/models"
	"myblog/internal/repository"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

type UserService struct {
	uow    repository.UnitOfWork
	mapper mapper.Mapper
}

func NewUserService(uow repository.UnitOfWork, m mapper.Mapper) *UserService {
	if uow == nil {
		panic("service: nil unit of work")
	}
	if m == nil {
		panic("service: nil mapper")
	}
	return &UserService{uow: uow, mapper: m}
}

func (s *UserService) log(ctx context.Context, method string) *slog.Logger {
	return logger.From(ctx).With(slog.String("service", "User"), slog.String("method", method))
}

// CreateUser registers a new user. The username is the email address and
// the repository stores only a hash of the password.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	l := s.log(ctx, "CreateUser")
	if req == nil {
		return nil, reject(l, invalid(MsgUserNil))
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "email" {
			return nil, reject(l, invalid(MsgUserEmailInvalid))
		}
		return nil, reject(l, invalid(MsgUserFieldsRequired))
	}

	_, err := s.uow.Users().GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, reject(l, conflict(MsgUserDuplicate))
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	// The username outlives email changes, so an old address may still be held.
	_, err = s.uow.Users().GetByUserName(ctx, req.Email)
	switch {
	case err == nil:
		return nil, reject(l, conflict(MsgUserNameTaken))
	case !errors.Is(err, models.ErrNotFound):
		return nil, err
	}

	var user models.User
	if err := s.mapper.Map(&user, req); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	user.UserName = req.Email

	created, err := s.uow.Users().Create(ctx, &user, req.Password)
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return nil, reject(l, conflict(MsgUserDuplicate))
	case errors.Is(err, models.ErrDuplicateUsername):
		return nil, reject(l, conflict(MsgUserNameTaken))
	case err != nil:
		return nil, err
	}
	l.Debug("User created", slog.String("id", created.ID))
	return created, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.uow.Users().GetAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if blank(id) {
		return nil, invalid(MsgUserIDInvalid)
	}
	user, err := s.uow.Users().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, notFound(MsgUserNotFound)
	}
	return user, err
}

// UpdateUser changes the name and email of an existing user. Every other
// field of user is ignored.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	l := s.log(ctx, "UpdateUser")
	if user == nil {
		return nil, reject(l, invalid(MsgUserNil))
	}
	if blank(user.ID) {
		return nil, reject(l, invalid(MsgUserIDInvalid))
	}
	if blank(user.FirstName) || blank(user.LastName) || blank(user.Email) {
		return nil, reject(l, invalid(MsgUserNameRequired))
	}
	if err := validate.Var(user.Email, "email"); err != nil {
		return nil, reject(l, invalid(MsgUserEmailInvalid))
	}

	existing, err := s.uow.Users().Get(ctx, user.ID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, reject(l, notFound(MsgUserNotFound))
	}
	if err != nil {
		return nil, err
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email

	updated, err := s.uow.Users().Update(ctx, existing)
	switch {
	case errors.Is(err, models.ErrNotFound):
		return nil, reject(l, notFound(MsgUserNotFound))
	case errors.Is(err, models.ErrDuplicateEmail):
		return nil, reject(l, conflict(MsgUserDuplicate))
	case err != nil:
		return nil, err
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	l := s.log(ctx, "DeleteUser")
	if blank(id) {
		return reject(l, invalid(MsgUserIDInvalid))
	}
	user, err := s.uow.Users().Get(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return reject(l, notFound(MsgUserNotFound))
	}
	if err != nil {
		return err
	}
	if err := s.uow.Users().Delete(ctx, user); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return reject(l, notFound(MsgUserNotFound))
		}
		return err
	}
	return nil
}
