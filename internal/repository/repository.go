package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/model"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go -package=repo_mocks

// Catalog holds book records.
type Catalog interface {
	Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetByUid(ctx context.Context, bookUid string) (model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Update(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error)
	Delete(ctx context.Context, bookUid string) error
	Count(ctx context.Context) (int, error)
	CountByCategory(ctx context.Context) (map[string]int, error)
}

// Identity holds user records. Read paths never select the password hash
// except GetByEmail, which login needs for the digest comparison.
type Identity interface {
	Create(ctx context.Context, fullName, email, passwordHash string, role model.Role) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByUid(ctx context.Context, userUid string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, userUid, fullName, email string, passwordHash *string) (model.User, error)
	Delete(ctx context.Context, userUid string) error
	Count(ctx context.Context) (int, error)
	CountByRole(ctx context.Context, role model.Role) (int, error)
}

// Ledger holds borrowing records. Borrow and Return are the two transactional
// consistency units: copy counter and record move together or not at all.
type Ledger interface {
	Borrow(ctx context.Context, userID, bookID int) (model.BorrowRecord, error)
	Return(ctx context.Context, recordUid string) (model.BorrowRecord, error)
	FindActiveByUserAndBook(ctx context.Context, userID, bookID int) (*model.BorrowRecord, error)
	FindByUser(ctx context.Context, userUid string) ([]model.BorrowRecord, error)
	ListAll(ctx context.Context) ([]model.BorrowRecord, error)
	CountActive(ctx context.Context) (int, error)
	CountOverdue(ctx context.Context) (int, error)
}

type Repositories struct {
	Catalog  Catalog
	Identity Identity
	Ledger   Ledger
}

func New(db *sqlx.DB, log *zap.Logger) *Repositories {
	log = log.Named("repo")
	return &Repositories{
		Catalog:  newCatalogRepository(db, log),
		Identity: newIdentityRepository(db, log),
		Ledger:   newLedgerRepository(db, log),
	}
}

const (
	booksTableName      = `books`
	usersTableName      = `users`
	borrowingsTableName = `borrowings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
