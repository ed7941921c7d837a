// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// AccountType distinguishes the kinds of bank accounts finsight tracks.
type AccountType string

const (
	// AccountTypeChecking is a day-to-day transactional account.
	AccountTypeChecking AccountType = "checking"
	// AccountTypeSavings is an interest-bearing savings account.
	AccountTypeSavings AccountType = "savings"
)

// IsValid reports whether the account type is one finsight understands.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeChecking, AccountTypeSavings:
		return true
	}
	return false
}

// ParseAccountType converts a raw column value into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// Account represents a bank account that transactions are booked against.
type Account struct {
	CreatedAt time.Time
	Name      string
	Type      AccountType
	ID        int64
	Archived  bool
}
