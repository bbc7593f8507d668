package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
	repo_mocks "github.com/libhub/library-service/internal/repository/mocks"
)

func TestUserService_Update(t *testing.T) {
	t.Parallel()

	const (
		userUid  = "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20"
		password = "correcthorse"
	)

	stored := func(t *testing.T) model.User {
		return model.User{
			ID:           7,
			UserUid:      userUid,
			FullName:     "Jane Reader",
			Email:        "jane@example.com",
			PasswordHash: hashOf(t, password),
			Role:         model.RoleBurrower,
		}
	}

	t.Run("self update with current password", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)
		identity.EXPECT().
			Update(gomock.Any(), userUid, "Jane R Reader", user.Email, nil).
			Return(model.User{UserUid: userUid, FullName: "Jane R Reader", Email: user.Email}, nil)

		updated, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName:        "Jane R Reader",
			Email:           user.Email,
			CurrentPassword: password,
		}, user)
		require.NoError(t, err)
		require.Equal(t, "Jane R Reader", updated.FullName)
	})

	t.Run("err. self update without current password", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)

		_, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName: "Jane R Reader",
			Email:    user.Email,
		}, user)
		require.Error(t, err)
	})

	t.Run("err. wrong current password", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)

		_, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName:        "Jane R Reader",
			Email:           user.Email,
			CurrentPassword: "not-the-password",
		}, user)
		require.ErrorIs(t, err, errs.ErrPasswordCheck)
	})

	t.Run("admin updates another user without password", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		admin := model.User{UserUid: "a0000000-0000-4000-8000-00000000000a", Role: model.RoleAdmin}
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)
		identity.EXPECT().
			Update(gomock.Any(), userUid, "Jane R Reader", user.Email, nil).
			Return(model.User{UserUid: userUid, FullName: "Jane R Reader", Email: user.Email}, nil)

		_, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName: "Jane R Reader",
			Email:    user.Email,
		}, admin)
		require.NoError(t, err)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)
		identity.EXPECT().
			Update(gomock.Any(), userUid, user.FullName, user.Email, gomock.Not(gomock.Nil())).
			DoAndReturn(func(_ context.Context, uid, fullName, email string, passwordHash *string) (model.User, error) {
				require.NoError(t, bcrypt.CompareHashAndPassword([]byte(*passwordHash), []byte("a-new-password")))
				return model.User{UserUid: uid, FullName: fullName, Email: email}, nil
			})

		_, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName:        user.FullName,
			Email:           user.Email,
			CurrentPassword: password,
			NewPassword:     "a-new-password",
		}, user)
		require.NoError(t, err)
	})

	t.Run("err. new email taken", func(t *testing.T) {
		t.Parallel()
		c := gomock.NewController(t)
		defer c.Finish()
		identity := repo_mocks.NewMockIdentity(c)
		svc := NewUserService(identity, zap.NewNop())

		user := stored(t)
		identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(user, nil)
		identity.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").Return(model.User{Email: "taken@example.com"}, nil)

		_, err := svc.Update(context.Background(), userUid, model.UpdateUserRequest{
			FullName:        user.FullName,
			Email:           "taken@example.com",
			CurrentPassword: password,
		}, user)
		require.ErrorIs(t, err, errs.ErrDuplicateEmail)
	})
}

func TestUserService_Get_hidesHash(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	identity := repo_mocks.NewMockIdentity(c)
	svc := NewUserService(identity, zap.NewNop())

	const userUid = "3f6c2a9e-7f0a-4d8f-9f1e-6b2c4d8e1a20"
	identity.EXPECT().GetByUid(gomock.Any(), userUid).Return(model.User{
		UserUid:      userUid,
		PasswordHash: "$2a$10$something",
	}, nil)

	user, err := svc.Get(context.Background(), userUid)
	require.NoError(t, err)
	require.Empty(t, user.PasswordHash)
}
