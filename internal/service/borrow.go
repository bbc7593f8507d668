package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
	"github.com/libhub/library-service/internal/repository"
)

// BorrowService is the sole writer of availableCopies and of borrowing
// status. Every mutation goes through Borrow or Return.
type BorrowService struct {
	catalog   repository.Catalog
	identity  repository.Identity
	ledger    repository.Ledger
	publisher *Publisher
	log       *zap.Logger
	now       func() time.Time
}

func NewBorrowService(catalog repository.Catalog, identity repository.Identity, ledger repository.Ledger, publisher *Publisher, log *zap.Logger) *BorrowService {
	return &BorrowService{
		catalog:   catalog,
		identity:  identity,
		ledger:    ledger,
		publisher: publisher,
		log:       log.Named("borrow"),
		now:       time.Now,
	}
}

// Borrow checks the preconditions in order (book exists, copy available, no
// active loan for the pair) and then commits the copy decrement together with
// the new record. The repository transaction re-checks availability and the
// active-loan uniqueness, so two concurrent borrows of the last copy cannot
// both pass.
func (s *BorrowService) Borrow(ctx context.Context, userUid, bookUid string) (model.BorrowRecord, error) {
	book, err := s.catalog.GetByUid(ctx, bookUid)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	if book.AvailableCopies <= 0 {
		return model.BorrowRecord{}, errs.ErrBookUnavailable
	}

	user, err := s.identity.GetByUid(ctx, userUid)
	if err != nil {
		return model.BorrowRecord{}, err
	}

	active, err := s.ledger.FindActiveByUserAndBook(ctx, user.ID, book.ID)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	if active != nil {
		return model.BorrowRecord{}, errs.ErrAlreadyBorrowed
	}

	record, err := s.ledger.Borrow(ctx, user.ID, book.ID)
	if err != nil {
		return model.BorrowRecord{}, err
	}

	s.publisher.Publish(model.CirculationEvent{
		Action:    "burrow",
		RecordUid: record.RecordUid,
		UserUid:   record.UserUid,
		BookUid:   record.BookUid,
		At:        s.now(),
	})

	return s.withEffectiveStatus(record), nil
}

// Return transitions exactly one record from burrowed to returned and gives
// the copy back. A second call on the same record reports ErrAlreadyReturned
// without touching the counter.
func (s *BorrowService) Return(ctx context.Context, recordUid string) (model.BorrowRecord, error) {
	record, err := s.ledger.Return(ctx, recordUid)
	if err != nil {
		return model.BorrowRecord{}, err
	}

	s.publisher.Publish(model.CirculationEvent{
		Action:    "return",
		RecordUid: record.RecordUid,
		UserUid:   record.UserUid,
		BookUid:   record.BookUid,
		At:        s.now(),
	})

	return record, nil
}

func (s *BorrowService) GetByUser(ctx context.Context, userUid string) ([]model.BorrowRecord, error) {
	records, err := s.ledger.FindByUser(ctx, userUid)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatuses(records), nil
}

func (s *BorrowService) ListAll(ctx context.Context) ([]model.BorrowRecord, error) {
	records, err := s.ledger.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withEffectiveStatuses(records), nil
}

func (s *BorrowService) CountActive(ctx context.Context) (int, error) {
	return s.ledger.CountActive(ctx)
}

func (s *BorrowService) CountOverdue(ctx context.Context) (int, error) {
	return s.ledger.CountOverdue(ctx)
}

func (s *BorrowService) withEffectiveStatus(record model.BorrowRecord) model.BorrowRecord {
	record.Status = record.EffectiveStatus(s.now())
	return record
}

func (s *BorrowService) withEffectiveStatuses(records []model.BorrowRecord) []model.BorrowRecord {
	now := s.now()
	for i := range records {
		records[i].Status = records[i].EffectiveStatus(now)
	}
	return records
}
