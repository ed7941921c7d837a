package model

import (
	"fmt"
	"time"
)

// DateLayout is the on-disk format of transaction dates.
const DateLayout = "2006-01-02"

// TransactionType indicates whether money left or entered the account.
type TransactionType string

const (
	// TransactionTypeDebit is money leaving the account.
	TransactionTypeDebit TransactionType = "debit"
	// TransactionTypeCredit is money entering the account.
	TransactionTypeCredit TransactionType = "credit"
)

// IsValid reports whether the transaction type is debit or credit.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeDebit || t == TransactionTypeCredit
}

// ParseTransactionType converts a raw column value into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// Transaction represents a single booked movement of money.
type Transaction struct {
	Date        time.Time // calendar date, time of day is ignored
	CreatedAt   time.Time
	Description string
	Type        TransactionType
	ID          int64
	AccountID   int64
	AmountCents int64 // always positive, direction is carried by Type
	CategoryID  int64
}

// FormattedDate returns the date as stored in the database.
func (t *Transaction) FormattedDate() string {
	return t.Date.Format(DateLayout)
}

// SignedCents returns the amount with debits negative and credits positive.
func (t *Transaction) SignedCents() int64 {
	if t.Type == TransactionTypeDebit {
		return -t.AmountCents
	}
	return t.AmountCents
}
