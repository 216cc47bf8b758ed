package postgres

import (
	"github.com/google/uuid"

	"github.com/dhalverson/homebase/core"
)

func (a *Adapter) LinkAccount(account *core.Account) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	query := `INSERT INTO accounts (id, "userId", type, provider, "providerAccountId", access_token, refresh_token, scope, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := a.pool.Exec(ctx, query,
		account.ID, account.UserID, account.Type, account.Provider, account.ProviderAccountID,
		account.AccessToken, account.RefreshToken, account.Scope, account.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrAccountExists
		}
		return storageErr(err)
	}
	return nil
}

func (a *Adapter) UnlinkAccount(provider, providerAccountID string) error {
	a.ensureSchema()

	ctx, cancel := opContext()
	defer cancel()

	query := `DELETE FROM accounts WHERE provider = $1 AND "providerAccountId" = $2`
	if _, err := a.pool.Exec(ctx, query, provider, providerAccountID); err != nil {
		return storageErr(err)
	}
	return nil
}
