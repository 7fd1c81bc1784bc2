// Package sqlrepo implements users.UserRepo on the relational users table.
// Queries number their placeholders in order of appearance so the same text
// runs on both pgx and sqlite3.
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	apperrors "github.com/jrsteele09/go-module-portal/internal/errors"
	"github.com/jrsteele09/go-module-portal/internal/storage"
	"github.com/jrsteele09/go-module-portal/users"
	"github.com/mattn/go-sqlite3"
)

const pgUniqueViolation = "23505"

var _ users.UserRepo = (*UserRepo)(nil)

type UserRepo struct {
	db storage.DBTX
}

func New(db storage.DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const selectUser = `SELECT user_id, username, password_hash, role, modules FROM users`

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+` WHERE username = $1`, username)
	return scanUser(row)
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+` WHERE user_id = $1`, id)
	return scanUser(row)
}

func (r *UserRepo) Insert(ctx context.Context, user *users.User) (int64, error) {
	query :=
		`INSERT INTO users (username, password_hash, role, modules)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.PasswordHash, string(user.Role), user.Modules.String()).Scan(&id)
	if err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, update users.UserUpdate) error {
	var err error
	if update.PasswordHash != nil {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET username = $1, role = $2, modules = $3, password_hash = $4 WHERE user_id = $5`,
			update.Username, string(update.Role), update.Modules.String(), *update.PasswordHash, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET username = $1, role = $2, modules = $3 WHERE user_id = $4`,
			update.Username, string(update.Role), update.Modules.String(), id)
	}
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

// Delete removes the row; deleting a missing id is not an error.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id); err != nil {
		return apperrors.Wrapf(err, "db error")
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+` ORDER BY user_id ASC`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	defer rows.Close()

	out := make([]*users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrapf(err, "db error")
	}
	return out, nil
}

func (r *UserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperrors.Wrapf(err, "db error")
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*users.User, error) {
	var (
		u       users.User
		role    string
		modules sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &modules)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrapf(err, "db error")
	}
	u.Role = users.RoleType(role)
	u.Modules = users.ParseModuleSet(modules.String)
	return &u, nil
}

// mapWriteError turns a unique-username violation into a validation error.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.NewValidation("username", "Username already exists.")
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return apperrors.NewValidation("username", "Username already exists.")
	}
	return apperrors.Wrapf(err, "db error")
}
