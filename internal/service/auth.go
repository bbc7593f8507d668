package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/repository"
	"github.com/libhub/library-service/pkg/auth"
)

type AuthService struct {
	identity repository.Identity
	log      *zap.Logger
}

func NewAuthService(identity repository.Identity, log *zap.Logger) *AuthService {
	return &AuthService{
		identity: identity,
		log:      log.Named("auth"),
	}
}

// Signup registers a burrower and issues a token. The pre-insert email lookup
// gives the friendly error; the unique constraint closes the race.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	if _, err := s.identity.GetByEmail(ctx, req.Email); err == nil {
		return model.AuthResponse{}, errs.ErrDuplicateEmail
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return model.AuthResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "hash password")
	}

	user, err := s.identity.Create(ctx, req.FullName, req.Email, string(hash), model.RoleBurrower)
	if err != nil {
		return model.AuthResponse{}, err
	}

	token, err := auth.IssueToken(user.UserUid, string(user.Role), user.Email)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "issue token")
	}

	return model.AuthResponse{
		Message: "User registered successfully!",
		Token:   token,
		User:    user,
	}, nil
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.identity.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return model.AuthResponse{}, errs.ErrBadCredentials
		}
		return model.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrBadCredentials
	}

	token, err := auth.IssueToken(user.UserUid, string(user.Role), user.Email)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "issue token")
	}

	user.PasswordHash = ""
	return model.AuthResponse{
		Message: "Login Successful",
		Token:   token,
		User:    user,
	}, nil
}

// SeedAdmin creates the configured admin account once, at startup.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.identity.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash password")
	}
	if _, err := s.identity.Create(ctx, "Admin", email, string(hash), model.RoleAdmin); err != nil {
		return err
	}
	s.log.Info("admin seeded", zap.String("email", email))
	return nil
}
