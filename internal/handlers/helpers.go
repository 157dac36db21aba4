package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/logger"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/money"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// transactionView is the row shape handed to templates, with the amount
// already formatted from cents.
type transactionView struct {
	ID          uint
	Date        string
	Description string
	Amount      string
	Type        string
}

func toTransactionViews(transactions []models.Transaction) []transactionView {
	views := make([]transactionView, 0, len(transactions))
	for _, t := range transactions {
		views = append(views, transactionView{
			ID:          t.ID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      money.FormatAmount(t.Amount),
			Type:        string(t.Type),
		})
	}
	return views
}

// failInternal logs an unexpected error and degrades to a plain 500. The
// client never sees internal details.
func failInternal(c *gin.Context, err error) {
	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.String(http.StatusInternalServerError, "Internal server error")
	c.Abort()
}
