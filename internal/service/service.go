package service

import (
	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/repository"
)

type Services struct {
	Auth   *AuthService
	User   *UserService
	Book   *BookService
	Borrow *BorrowService
	Stats  *StatsService
}

// New wires the services over the three stores. producer may be nil, in which
// case borrow/return events are not published.
func New(repos *repository.Repositories, producer sarama.SyncProducer, log *zap.Logger) *Services {
	publisher := NewPublisher(producer, log)
	return &Services{
		Auth:   NewAuthService(repos.Identity, log),
		User:   NewUserService(repos.Identity, log),
		Book:   NewBookService(repos.Catalog, log),
		Borrow: NewBorrowService(repos.Catalog, repos.Identity, repos.Ledger, publisher, log),
		Stats:  NewStatsService(repos.Catalog, repos.Identity, repos.Ledger, log),
	}
}
