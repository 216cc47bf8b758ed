package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dhalverson/homebase/core"
)

const userColumns = `id, name, email, "emailVerified", image`

func (a *Adapter) CreateUser(user *core.User) error {
	a.ensureSchema()

	if user.Email == "" {
		return core.ErrEmailRequired
	}

	ctx, cancel := opContext()
	defer cancel()

	user.ID = uuid.New().String()
	query := `INSERT INTO users (id, name, email, "emailVerified", image) VALUES ($1, $2, $3, $4, $5)`
	_, err := a.pool.Exec(ctx, query, user.ID, nullable(user.Name), user.Email, user.EmailVerified, user.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrEmailExists
		}
		return storageErr(err)
	}
	return nil
}

func (a *Adapter) GetUserByID(id string) (*core.User, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetUserByEmail(email string) (*core.User, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	q := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return a.scanUser(a.pool.QueryRow(ctx, q, email))
}

func (a *Adapter) GetUserByAccount(provider, providerAccountID string) (*core.User, error) {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	q := `SELECT u.id, u.name, u.email, u."emailVerified", u.image
	      FROM users u
	      JOIN accounts a ON a."userId" = u.id
	      WHERE a.provider = $1 AND a."providerAccountId" = $2`
	return a.scanUser(a.pool.QueryRow(ctx, q, provider, providerAccountID))
}

func (a *Adapter) UpdateUser(user *core.User) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	q := `UPDATE users SET name = $1, email = $2, "emailVerified" = $3, image = $4 WHERE id = $5`
	cmd, err := a.pool.Exec(ctx, q, nullable(user.Name), user.Email, user.EmailVerified, user.Image, user.ID)
	if err != nil {
		return storageErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

// DeleteUser relies on the ON DELETE CASCADE constraints to take the
// user's accounts and sessions with it. Deleting an absent id is a no-op.
func (a *Adapter) DeleteUser(id string) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	if _, err := a.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return storageErr(err)
	}
	return nil
}

func (a *Adapter) scanUser(row pgx.Row) (*core.User, error) {
	user := &core.User{}
	var name *string
	err := row.Scan(&user.ID, &name, &user.Email, &user.EmailVerified, &user.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	if name != nil {
		user.Name = *name
	}
	return user, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
