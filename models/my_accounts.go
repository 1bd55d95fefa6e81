package models

import (
	"fmt"
	"sync"
)

// MyAccounts is the purchased-accounts list plus the carousel cursor.
type MyAccounts struct {
	mu       sync.Mutex
	accounts []PurchasedAccount
	cursor   int
	loaded   bool
	failed   bool
}

// NewMyAccounts returns an empty, not yet loaded list.
func NewMyAccounts() *MyAccounts {
	return &MyAccounts{}
}

// Reset replaces the list wholesale and moves the cursor back to the first account.
func (m *MyAccounts) Reset(accounts []PurchasedAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts = accounts
	m.cursor = 0
	m.loaded = true
	m.failed = false
}

// MarkFailed records that the last reload failed. The previous list is kept.
func (m *MyAccounts) MarkFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed = true
}

// Failed reports whether the last reload failed.
func (m *MyAccounts) Failed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failed
}

// Loaded reports whether a list has been loaded at least once.
func (m *MyAccounts) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Len is the number of purchased accounts.
func (m *MyAccounts) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// Cursor is the zero-based index of the account on display.
func (m *MyAccounts) Cursor() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursor
}

// SetCursor moves to i, clamped to the list.
func (m *MyAccounts) SetCursor(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = m.clamp(i)
}

// Next moves the cursor forward, stopping at the last account.
func (m *MyAccounts) Next() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = m.clamp(m.cursor + 1)
}

// Prev moves the cursor back, stopping at the first account.
func (m *MyAccounts) Prev() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = m.clamp(m.cursor - 1)
}

// Current returns the account under the cursor.
func (m *MyAccounts) Current() (PurchasedAccount, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.accounts) == 0 {
		return PurchasedAccount{}, false
	}
	return m.accounts[m.cursor], true
}

// All returns a copy of the list.
func (m *MyAccounts) All() []PurchasedAccount {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]PurchasedAccount, len(m.accounts))
	copy(out, m.accounts)
	return out
}

// Indicator renders "Account i / n".
func (m *MyAccounts) Indicator() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.accounts) == 0 {
		return ""
	}
	return fmt.Sprintf("Account %d / %d", m.cursor+1, len(m.accounts))
}

func (m *MyAccounts) clamp(i int) int {
	if i >= len(m.accounts) {
		i = len(m.accounts) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
