package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
)

type ledgerRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func newLedgerRepository(db *sqlx.DB, log *zap.Logger) *ledgerRepository {
	return &ledgerRepository{
		db:  db,
		log: log.Named("ledger"),
	}
}

func recordSelect() sq.SelectBuilder {
	return qb.Select(
		"br.id", "br.record_uid", "u.user_uid", "u.full_name", "u.email",
		"b.book_uid", "b.title", "b.author", "b.category",
		"br.burrow_date", "br.due_date", "br.return_date", "br.status").
		From(borrowingsTableName + " br").
		Join(usersTableName + " u on u.id = br.user_id").
		Join(booksTableName + " b on b.id = br.book_id")
}

// Borrow decrements the book's available copies and inserts the burrowed
// record in one transaction. The conditional decrement and the one_active_borrow
// unique index make concurrent borrows of the last copy resolve to exactly
// one success.
func (r *ledgerRepository) Borrow(ctx context.Context, userID, bookID int) (model.BorrowRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
update books
	set available_copies = available_copies - 1, updated_at = now()
where id = $1 and available_copies > 0`, bookID)
	if err != nil {
		return model.BorrowRecord{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx,
			`select exists(select 1 from books where id = $1)`, bookID).Scan(&exists); err != nil {
			return model.BorrowRecord{}, err
		}
		if !exists {
			return model.BorrowRecord{}, errs.ErrBookNotFound
		}
		return model.BorrowRecord{}, errs.ErrBookUnavailable
	}

	var recordID int
	err = tx.QueryRowContext(ctx, `
insert into borrowings (record_uid, user_id, book_id)
values ($1, $2, $3)
returning id`, uuid.New(), userID, bookID).Scan(&recordID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.BorrowRecord{}, errs.ErrAlreadyBorrowed
		}
		r.log.Error("Borrow insert", zap.Int("user_id", userID), zap.Int("book_id", bookID))
		return model.BorrowRecord{}, err
	}

	record, err := getRecord(ctx, tx, sq.Eq{"br.id": recordID})
	if err != nil {
		return model.BorrowRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, errors.Wrap(err, "commit")
	}
	return record, nil
}

// Return flips the record to returned and gives the copy back in one
// transaction. The status='burrowed' guard makes the transition idempotent:
// a second call finds no active row and reports ErrAlreadyReturned.
func (r *ledgerRepository) Return(ctx context.Context, recordUid string) (model.BorrowRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.BorrowRecord{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	var (
		recordID int
		bookID   int
	)
	err = tx.QueryRowContext(ctx, `
update borrowings
	set status = 'returned', return_date = now()
where record_uid = $1 and status = 'burrowed'
returning id, book_id`, recordUid).Scan(&recordID, &bookID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`select exists(select 1 from borrowings where record_uid = $1)`, recordUid).Scan(&exists); err != nil {
				return model.BorrowRecord{}, err
			}
			if exists {
				return model.BorrowRecord{}, errs.ErrAlreadyReturned
			}
			return model.BorrowRecord{}, errs.ErrRecordNotFound
		}
		return model.BorrowRecord{}, err
	}

	if _, err := tx.ExecContext(ctx, `
update books
	set available_copies = least(available_copies + 1, total_copies), updated_at = now()
where id = $1`, bookID); err != nil {
		return model.BorrowRecord{}, err
	}

	record, err := getRecord(ctx, tx, sq.Eq{"br.id": recordID})
	if err != nil {
		return model.BorrowRecord{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.BorrowRecord{}, errors.Wrap(err, "commit")
	}
	return record, nil
}

func getRecord(ctx context.Context, q sqlx.QueryerContext, where interface{}) (model.BorrowRecord, error) {
	query, args, err := recordSelect().Where(where).Limit(1).ToSql()
	if err != nil {
		return model.BorrowRecord{}, err
	}

	var record model.BorrowRecord
	if err := sqlx.GetContext(ctx, q, &record, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BorrowRecord{}, errs.ErrRecordNotFound
		}
		return model.BorrowRecord{}, err
	}
	return record, nil
}

func (r *ledgerRepository) FindActiveByUserAndBook(ctx context.Context, userID, bookID int) (*model.BorrowRecord, error) {
	record, err := getRecord(ctx, r.db, sq.And{
		sq.Eq{"br.user_id": userID},
		sq.Eq{"br.book_id": bookID},
		sq.Eq{"br.status": model.StatusBurrowed},
	})
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *ledgerRepository) FindByUser(ctx context.Context, userUid string) ([]model.BorrowRecord, error) {
	query, args, err := recordSelect().
		Where(sq.Eq{"u.user_uid": userUid}).
		OrderBy("br.burrow_date desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	records := make([]model.BorrowRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ledgerRepository) ListAll(ctx context.Context) ([]model.BorrowRecord, error) {
	query, args, err := recordSelect().
		OrderBy("br.burrow_date desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	records := make([]model.BorrowRecord, 0)
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *ledgerRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`select count(*) from borrowings where status = 'burrowed'`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ledgerRepository) CountOverdue(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`select count(*) from borrowings where status = 'burrowed' and due_date < now()`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
