package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/repository"
)

type UserService struct {
	identity repository.Identity
	log      *zap.Logger
}

func NewUserService(identity repository.Identity, log *zap.Logger) *UserService {
	return &UserService{
		identity: identity,
		log:      log.Named("user"),
	}
}

func (s *UserService) Get(ctx context.Context, userUid string) (model.User, error) {
	user, err := s.identity.GetByUid(ctx, userUid)
	if err != nil {
		return model.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.identity.List(ctx)
}

// Update applies the profile rules: a self-update must present the current
// password, an admin may update anyone directly; a password change always
// requires the current password.
func (s *UserService) Update(ctx context.Context, userUid string, req model.UpdateUserRequest, caller model.User) (model.User, error) {
	user, err := s.identity.GetByUid(ctx, userUid)
	if err != nil {
		return model.User{}, err
	}

	isSelfUpdate := caller.UserUid == userUid
	if isSelfUpdate && req.CurrentPassword == "" {
		return model.User{}, errors.New("current password is required to update your profile")
	}

	if req.Email != user.Email {
		if _, err := s.identity.GetByEmail(ctx, req.Email); err == nil {
			return model.User{}, errs.ErrDuplicateEmail
		} else if !errors.Is(err, errs.ErrUserNotFound) {
			return model.User{}, err
		}
	}

	var newHash *string
	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return model.User{}, errors.New("current password is required to change password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return model.User{}, errs.ErrPasswordCheck
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return model.User{}, errors.Wrap(err, "hash password")
		}
		h := string(hash)
		newHash = &h
	} else if isSelfUpdate {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
			return model.User{}, errs.ErrPasswordCheck
		}
	}

	return s.identity.Update(ctx, userUid, req.FullName, req.Email, newHash)
}

func (s *UserService) Delete(ctx context.Context, userUid string) error {
	return s.identity.Delete(ctx, userUid)
}

func (s *UserService) Count(ctx context.Context) (int, error) {
	return s.identity.Count(ctx)
}
