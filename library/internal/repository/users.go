package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-ledger/library/internal/errs"
	"github.com/Astemirdum/library-ledger/library/internal/model"
)

func (r *repository) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	b := qb.Insert(usersTableName).
		Columns("username", "password").
		Values(user.Username, user.Password).
		Suffix("RETURNING " + strings.Join(userColumns, ", "))

	var created model.User
	if err := get(ctx, r.log, r.db, &created, b, "CreateUser"); err != nil {
		if isUniqueViolation(err) {
			return model.User{}, errs.ErrUsernameExists
		}
		return model.User{}, errors.Wrap(err, "CreateUser")
	}
	return created, nil
}

func (r *repository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	b := qb.Select(userColumns...).
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		Limit(1)

	var user model.User
	if err := get(ctx, r.log, r.db, &user, b, "GetUserByUsername"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, errors.Wrap(err, "GetUserByUsername")
	}
	return user, nil
}
