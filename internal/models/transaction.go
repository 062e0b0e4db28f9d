package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether a transaction adds to or takes from the balance.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single ledger entry. The amount is always positive,
// the sign is implied by Type.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        Date            `json:"date"`
}

// Draft holds the user supplied fields of a transaction before it is stored.
type Draft struct {
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Description string
	Date        Date
}

// MarshalJSON writes the amount as a JSON number so stored ledgers keep their
// original layout.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type plain Transaction
	return json.Marshal(struct {
		plain
		Amount json.Number `json:"amount"`
	}{plain(t), number(t.Amount)})
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
