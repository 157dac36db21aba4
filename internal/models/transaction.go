package models

// TransactionType represents the direction of a transaction. The sign is
// never stored on the amount; direction comes from the type.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction represents a single income or expense entry owned by a user.
// Amount is stored in minor units (cents) to keep aggregation exact. Date is
// a plain YYYY-MM-DD calendar date with no timezone semantics; the format is
// enforced at the edge so lexicographic order matches chronological order.
type Transaction struct {
	Base
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Date        string          `gorm:"not null" json:"date"`
	Description string          `json:"description"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
}
