package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/money"
	"fintrack/internal/services"
)

// AdminHandler renders the cross-user balance overview. The route behind it
// requires the distinguished admin identity.
type AdminHandler struct {
	userService        services.UserServicer
	transactionService services.TransactionServicer
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(userService services.UserServicer, transactionService services.TransactionServicer) *AdminHandler {
	return &AdminHandler{userService: userService, transactionService: transactionService}
}

// userSummary is one row of the admin overview.
type userSummary struct {
	Username string
	Income   string
	Expense  string
	Balance  string
}

// Summary lists every user with income/expense/balance aggregated over all
// of their transactions. Linear in users times transactions per user, which
// is fine at the expected scale.
func (h *AdminHandler) Summary(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		failInternal(c, err)
		return
	}

	summaries := make([]userSummary, 0, len(users))
	for _, user := range users {
		transactions, err := h.transactionService.ListTransactions(user.ID, 0)
		if err != nil {
			failInternal(c, err)
			return
		}
		s := h.transactionService.Summarize(transactions)
		summaries = append(summaries, userSummary{
			Username: user.Username,
			Income:   money.FormatAmount(s.Income),
			Expense:  money.FormatAmount(s.Expense),
			Balance:  money.FormatAmount(s.Balance),
		})
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{"Summaries": summaries})
}
