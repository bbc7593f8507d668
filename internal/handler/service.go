package handler

import (
	"context"

	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go -package=service_mocks

type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
}

type UserService interface {
	Get(ctx context.Context, userUid string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, userUid string, req model.UpdateUserRequest, caller model.User) (model.User, error)
	Delete(ctx context.Context, userUid string) error
	Count(ctx context.Context) (int, error)
}

type BookService interface {
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	Get(ctx context.Context, bookUid string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	Delete(ctx context.Context, bookUid string) error
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

type BorrowService interface {
	Borrow(ctx context.Context, userUid, bookUid string) (model.BorrowRecord, error)
	Return(ctx context.Context, recordUid string) (model.BorrowRecord, error)
	GetByUser(ctx context.Context, userUid string) ([]model.BorrowRecord, error)
	ListAll(ctx context.Context) ([]model.BorrowRecord, error)
	CountActive(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context) (int, error)
}

type StatsService interface {
	Overview(ctx context.Context) (model.StatsOverview, error)
}

var (
	_ AuthService   = (*service.AuthService)(nil)
	_ UserService   = (*service.UserService)(nil)
	_ BookService   = (*service.BookService)(nil)
	_ BorrowService = (*service.BorrowService)(nil)
	_ StatsService  = (*service.StatsService)(nil)
)
