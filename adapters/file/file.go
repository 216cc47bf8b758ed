// Package file backs the storage contract with a single JSON document on
// local disk. It is the zero-infrastructure fallback for local and demo
// environments.
//
// Every mutation reads the whole document, changes it in memory, and
// writes the whole document back. A process-local mutex serializes
// callers within one process (which is what makes token redemption
// at-most-once here), but nothing guards against a second process
// writing the same file: concurrent multi-process use is last-write-wins
// at whole-document granularity and is explicitly unsupported.
package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dhalverson/homebase/core"
)

// document is the on-disk shape: one object with four array-valued keys.
type document struct {
	Users              []*core.User              `json:"users"`
	Accounts           []*core.Account           `json:"accounts"`
	Sessions           []*core.Session           `json:"sessions"`
	VerificationTokens []*core.VerificationToken `json:"verificationTokens"`
}

func emptyDocument() *document {
	return &document{
		Users:              []*core.User{},
		Accounts:           []*core.Account{},
		Sessions:           []*core.Session{},
		VerificationTokens: []*core.VerificationToken{},
	}
}

type Adapter struct {
	path string
	mu   sync.Mutex
}

var _ core.AuthStorage = (*Adapter)(nil)

func New(path string) *Adapter {
	return &Adapter{path: path}
}

// load reads the whole document. A missing or unparsable file is treated
// as empty and the next save recreates it. Any other read failure is
// surfaced as a storage error: treating a transient permission or I/O
// problem as an empty document would let the next save overwrite the
// file with only the new record.
func (a *Adapter) load() (*document, error) {
	raw, err := os.ReadFile(a.path)
	if os.IsNotExist(err) {
		return emptyDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}

	doc := emptyDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return emptyDocument(), nil
	}
	return doc, nil
}

// save writes the whole document with an atomic replace so a crash
// mid-write never leaves a torn file behind.
func (a *Adapter) save(doc *document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
		}
	}

	tmp := a.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmp, a.path); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	return nil
}
