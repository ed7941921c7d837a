package seed

import "github.com/Thaonnor/finsight/internal/model"

// CategorySpec describes a category to insert. Parent names a category
// inserted earlier in the same run; empty means a root category.
type CategorySpec struct {
	Name   string
	Parent string
}

// AccountSpec describes an account to insert.
type AccountSpec struct {
	Name string
	Type model.AccountType
}

// Template is a transaction shape the seeder samples from.
type Template struct {
	Description string
	Type        model.TransactionType
	Category    string
}

// Sampling bounds, all inclusive.
const (
	MinTransactionsPerAccount = 5
	MaxTransactionsPerAccount = 10
	MinAmountCents            = 500
	MaxAmountCents            = 15000
	WindowDays                = 30
)

// Categories are inserted in order, so a parent always precedes its children.
var Categories = []CategorySpec{
	{Name: "Food"},
	{Name: "Groceries", Parent: "Food"},
	{Name: "Transportation"},
}

// Accounts are the development accounts created by every run.
var Accounts = []AccountSpec{
	{Name: "Chase Checking", Type: model.AccountTypeChecking},
	{Name: "Wells Fargo Savings", Type: model.AccountTypeSavings},
	{Name: "Credit Union Checking", Type: model.AccountTypeChecking},
	{Name: "High Yield Savings", Type: model.AccountTypeSavings},
}

// Templates are sampled uniformly with replacement.
var Templates = []Template{
	{Description: "Whole Foods", Type: model.TransactionTypeDebit, Category: "Groceries"},
	{Description: "Starbucks", Type: model.TransactionTypeDebit, Category: "Food"},
	{Description: "Gas Station", Type: model.TransactionTypeDebit, Category: "Transportation"},
	{Description: "Salary Deposit", Type: model.TransactionTypeCredit, Category: model.UncategorizedCategory},
	{Description: "Restaurant", Type: model.TransactionTypeDebit, Category: "Food"},
	{Description: "Uber", Type: model.TransactionTypeDebit, Category: "Transportation"},
	{Description: "Grocery Store", Type: model.TransactionTypeDebit, Category: "Groceries"},
	{Description: "Interest Payment", Type: model.TransactionTypeCredit, Category: model.UncategorizedCategory},
}
