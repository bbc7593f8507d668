package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/libhub/library-service/internal/errs"
	"github.com/libhub/library-service/internal/model"
)

type catalogRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func newCatalogRepository(db *sqlx.DB, log *zap.Logger) *catalogRepository {
	return &catalogRepository{
		db:  db,
		log: log.Named("catalog"),
	}
}

var bookColumns = []string{
	"id", "book_uid", "title", "author", "category", "description", "isbn",
	"publisher", "published_year", "cover_image", "total_copies", "available_copies",
	"created_at", "updated_at",
}

func (r *catalogRepository) Create(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	const defaultCopies = 10

	total := defaultCopies
	if req.TotalCopies != nil {
		total = *req.TotalCopies
	}
	available := total
	if req.AvailableCopies != nil && *req.AvailableCopies < total {
		available = *req.AvailableCopies
	}

	q, args, err := qb.Insert(booksTableName).
		Columns("book_uid", "title", "author", "category", "description", "isbn",
			"publisher", "published_year", "cover_image", "total_copies", "available_copies").
		Values(uuid.New(), req.Title, req.Author, req.Category, req.Description, req.ISBN,
			req.Publisher, req.PublishedYear, req.CoverImage, total, available).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Book{}, errs.ErrDuplicateISBN
		}
		r.log.Error("Create", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *catalogRepository) GetByUid(ctx context.Context, bookUid string) (model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	books := make([]model.Book, 0)
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *catalogRepository) Update(ctx context.Context, bookUid string, req model.UpdateBookRequest) (model.Book, error) {
	upd := qb.Update(booksTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"book_uid": bookUid}).
		Suffix("returning *")

	if req.Title != nil {
		upd = upd.Set("title", *req.Title)
	}
	if req.Author != nil {
		upd = upd.Set("author", *req.Author)
	}
	if req.Category != nil {
		upd = upd.Set("category", *req.Category)
	}
	if req.Description != nil {
		upd = upd.Set("description", *req.Description)
	}
	if req.ISBN != nil {
		upd = upd.Set("isbn", *req.ISBN)
	}
	if req.Publisher != nil {
		upd = upd.Set("publisher", *req.Publisher)
	}
	if req.PublishedYear != nil {
		upd = upd.Set("published_year", *req.PublishedYear)
	}
	if req.CoverImage != nil {
		upd = upd.Set("cover_image", *req.CoverImage)
	}
	if req.TotalCopies != nil {
		// keep the availableCopies <= totalCopies invariant when shrinking
		upd = upd.Set("total_copies", *req.TotalCopies).
			Set("available_copies", sq.Expr("least(available_copies, ?)", *req.TotalCopies))
	}

	q, args, err := upd.ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrBookNotFound
		}
		if isUniqueViolation(err) {
			return model.Book{}, errs.ErrDuplicateISBN
		}
		r.log.Error("Update", zap.String("q", q), zap.Any("args", args))
		return model.Book{}, err
	}
	return book, nil
}

func (r *catalogRepository) Delete(ctx context.Context, bookUid string) error {
	q, args, err := qb.Delete(booksTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrBookNotFound
	}
	return nil
}

func (r *catalogRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `select count(*) from books`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *catalogRepository) CountByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `select category, count(*) from books group by category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	counts := make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
