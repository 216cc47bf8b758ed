package file

import (
	"github.com/google/uuid"

	"github.com/dhalverson/homebase/core"
)

func (a *Adapter) LinkAccount(account *core.Account) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.Accounts {
		if existing.Provider == account.Provider && existing.ProviderAccountID == account.ProviderAccountID {
			return core.ErrAccountExists
		}
	}

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	doc.Accounts = append(doc.Accounts, account)
	return a.save(doc)
}

func (a *Adapter) UnlinkAccount(provider, providerAccountID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	accounts := doc.Accounts[:0]
	found := false
	for _, account := range doc.Accounts {
		if account.Provider == provider && account.ProviderAccountID == providerAccountID {
			found = true
			continue
		}
		accounts = append(accounts, account)
	}
	if !found {
		return nil
	}

	doc.Accounts = accounts
	return a.save(doc)
}
