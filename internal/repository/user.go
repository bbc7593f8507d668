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

type identityRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func newIdentityRepository(db *sqlx.DB, log *zap.Logger) *identityRepository {
	return &identityRepository{
		db:  db,
		log: log.Named("identity"),
	}
}

// userColumns excludes password_hash: the digest leaves the store only
// through GetByEmail.
var userColumns = []string{
	"id", "user_uid", "full_name", "email", "role", "created_at", "updated_at",
}

func (r *identityRepository) Create(ctx context.Context, fullName, email, passwordHash string, role model.Role) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("user_uid", "full_name", "email", "password_hash", "role").
		Values(uuid.New(), fullName, email, passwordHash, role).
		Suffix("returning " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.User{}, errs.ErrDuplicateEmail
		}
		r.log.Error("Create", zap.String("q", q))
		return model.User{}, err
	}
	return user, nil
}

func (r *identityRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	q, args, err := qb.Select(append(userColumns, "password_hash")...).
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *identityRepository) GetByUid(ctx context.Context, userUid string) (model.User, error) {
	q, args, err := qb.Select(append(userColumns, "password_hash")...).
		From(usersTableName).
		Where(sq.Eq{"user_uid": userUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *identityRepository) List(ctx context.Context) ([]model.User, error) {
	q, args, err := qb.Select(userColumns...).
		From(usersTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, q, args...); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *identityRepository) Update(ctx context.Context, userUid, fullName, email string, passwordHash *string) (model.User, error) {
	upd := qb.Update(usersTableName).
		Set("full_name", fullName).
		Set("email", email).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_uid": userUid}).
		Suffix("returning " + joinColumns(userColumns))

	if passwordHash != nil {
		upd = upd.Set("password_hash", *passwordHash)
	}

	q, args, err := upd.ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return model.User{}, errs.ErrDuplicateEmail
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *identityRepository) Delete(ctx context.Context, userUid string) error {
	q, args, err := qb.Delete(usersTableName).
		Where(sq.Eq{"user_uid": userUid}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

func (r *identityRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `select count(*) from users`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *identityRepository) CountByRole(ctx context.Context, role model.Role) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx,
		`select count(*) from users where role = $1`, role).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}
