package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense entry for a user.
// Amount is in cents and must be non-negative; the sign lives in the type.
func (s *transactionService) CreateTransaction(userID uint, date, description string, amount int64, txType models.TransactionType) (*models.Transaction, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}
	if amount < 0 {
		return nil, apperrors.ErrInvalidAmount
	}
	if date == "" {
		return nil, apperrors.ErrInvalidDate
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transaction, nil
}

// ListTransactions returns a user's transactions ordered by date descending,
// newest entry first among same-day transactions. A limit of 0 returns all.
func (s *transactionService) ListTransactions(userID uint, limit int) ([]models.Transaction, error) {
	q := s.db.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

// GetTransaction retrieves a transaction by id, scoped to the owning user.
func (s *transactionService) GetTransaction(userID, transactionID uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction rewrites an owned transaction in a single atomic
// statement. Zero affected rows means the transaction does not exist or
// belongs to another user, and is reported as not found.
func (s *transactionService) UpdateTransaction(userID, transactionID uint, date, description string, amount int64, txType models.TransactionType) error {
	if !txType.Valid() {
		return apperrors.ErrInvalidTransactionType
	}
	if amount < 0 {
		return apperrors.ErrInvalidAmount
	}
	if date == "" {
		return apperrors.ErrInvalidDate
	}

	result := s.db.Model(&models.Transaction{}).
		Where("id = ? AND user_id = ?", transactionID, userID).
		Updates(map[string]interface{}{
			"date":        date,
			"description": description,
			"amount":      amount,
			"type":        txType,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes an owned transaction. As with updates, the
// ownership check is folded into the delete predicate itself.
func (s *transactionService) DeleteTransaction(userID, transactionID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// Summarize aggregates income and expense totals over the given
// transactions using integer cents.
func (s *transactionService) Summarize(transactions []models.Transaction) Summary {
	var summary Summary
	for _, t := range transactions {
		if t.Type == models.TransactionTypeIncome {
			summary.Income += t.Amount
		} else {
			summary.Expense += t.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense
	return summary
}
