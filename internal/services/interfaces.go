package services

import "fintrack/internal/models"

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	ListUsers() ([]models.User, error)
}

// Summary holds aggregated income/expense totals in cents.
// Balance is always income minus expense.
type Summary struct {
	Income  int64
	Expense int64
	Balance int64
}

// TransactionServicer defines the contract for transaction-related business
// logic. Every read and write is scoped by both the transaction id and the
// owning user id; a transaction belonging to another user behaves exactly
// like one that does not exist.
type TransactionServicer interface {
	CreateTransaction(userID uint, date, description string, amount int64, txType models.TransactionType) (*models.Transaction, error)
	ListTransactions(userID uint, limit int) ([]models.Transaction, error)
	GetTransaction(userID, transactionID uint) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID uint, date, description string, amount int64, txType models.TransactionType) error
	DeleteTransaction(userID, transactionID uint) error
	Summarize(transactions []models.Transaction) Summary
}
