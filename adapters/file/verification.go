package file

import (
	"time"

	"github.com/dhalverson/homebase/core"
)

func (a *Adapter) CreateVerificationToken(token *core.VerificationToken) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return err
	}
	for _, existing := range doc.VerificationTokens {
		if existing.Identifier == token.Identifier && existing.Token == token.Token {
			return core.ErrTokenExists
		}
	}

	doc.VerificationTokens = append(doc.VerificationTokens, token)
	return a.save(doc)
}

// UseVerificationToken removes the token under the adapter mutex, so two
// in-process redemption attempts cannot both succeed. An expired token
// is deleted and reported as not found, same as a missing one.
func (a *Adapter) UseVerificationToken(identifier, tokenValue string) (*core.VerificationToken, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	tokens := doc.VerificationTokens[:0]
	var used *core.VerificationToken
	for _, token := range doc.VerificationTokens {
		if token.Identifier == identifier && token.Token == tokenValue {
			used = token
			continue
		}
		tokens = append(tokens, token)
	}
	if used == nil {
		return nil, core.ErrTokenNotFound
	}

	doc.VerificationTokens = tokens
	if err := a.save(doc); err != nil {
		return nil, err
	}

	if time.Now().After(used.Expires) {
		return nil, core.ErrTokenNotFound
	}
	return used, nil
}
