package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/middleware"
	"fintrack/internal/models"
	"fintrack/internal/money"
	"fintrack/internal/services"
)

// dashboardLimit is how many recent transactions the dashboard shows and
// aggregates.
const dashboardLimit = 5

// TransactionHandler handles the dashboard and transaction CRUD routes.
// Every route behind it requires an authenticated session.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionForm represents the add/edit form fields. Amount arrives as a
// decimal string and is parsed to cents explicitly; a malformed amount is a
// validation error, never silently coerced.
type TransactionForm struct {
	Date        string `form:"date" binding:"required,calendar_date"`
	Description string `form:"description"`
	Amount      string `form:"amount" binding:"required"`
	Type        string `form:"type" binding:"required,transaction_type"`
}

// Dashboard renders the recent-activity summary: the five most recent
// transactions by date and their income/expense/balance totals.
func (h *TransactionHandler) Dashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID, dashboardLimit)
	if err != nil {
		failInternal(c, err)
		return
	}

	summary := h.transactionService.Summarize(transactions)
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username":     c.GetString(middleware.UsernameKey),
		"Income":       money.FormatAmount(summary.Income),
		"Expense":      money.FormatAmount(summary.Expense),
		"Balance":      money.FormatAmount(summary.Balance),
		"Transactions": toTransactionViews(transactions),
	})
}

// List renders the full transaction list for the session's user.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	transactions, err := h.transactionService.ListTransactions(userID, 0)
	if err != nil {
		failInternal(c, err)
		return
	}

	c.HTML(http.StatusOK, "transactions.html", gin.H{
		"Transactions": toTransactionViews(transactions),
	})
}

// ShowAdd renders an empty add form.
func (h *TransactionHandler) ShowAdd(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", gin.H{})
}

// Add creates a transaction from the form and redirects to the list.
func (h *TransactionHandler) Add(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "add.html", 0, form, "Please fill in a valid date, amount, and type")
		return
	}

	amount, err := money.ParseAmount(form.Amount)
	if err != nil {
		h.renderForm(c, "add.html", 0, form, apperrors.ErrInvalidAmount.Message)
		return
	}

	if _, err := h.transactionService.CreateTransaction(userID, form.Date, form.Description, amount, models.TransactionType(form.Type)); err != nil {
		failInternal(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions")
}

// ShowEdit renders the edit form pre-filled with the owned transaction, or
// redirects to the list when the id does not resolve for this user.
func (h *TransactionHandler) ShowEdit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		c.Redirect(http.StatusFound, "/transactions")
		return
	}

	transaction, err := h.transactionService.GetTransaction(userID, id)
	if err != nil {
		if isAppErrorCode(err, apperrors.ErrTransactionNotFound.Code) {
			c.Redirect(http.StatusFound, "/transactions")
			return
		}
		failInternal(c, err)
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{
		"ID":          transaction.ID,
		"Date":        transaction.Date,
		"Description": transaction.Description,
		"Amount":      money.FormatAmount(transaction.Amount),
		"Type":        string(transaction.Type),
	})
}

// Edit updates an owned transaction. A transaction that is absent or owned
// by someone else redirects without mutating anything.
func (h *TransactionHandler) Edit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		c.Redirect(http.StatusFound, "/transactions")
		return
	}

	var form TransactionForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, "edit.html", id, form, "Please fill in a valid date, amount, and type")
		return
	}

	amount, err := money.ParseAmount(form.Amount)
	if err != nil {
		h.renderForm(c, "edit.html", id, form, apperrors.ErrInvalidAmount.Message)
		return
	}

	if err := h.transactionService.UpdateTransaction(userID, id, form.Date, form.Description, amount, models.TransactionType(form.Type)); err != nil {
		if isAppErrorCode(err, apperrors.ErrTransactionNotFound.Code) {
			c.Redirect(http.StatusFound, "/transactions")
			return
		}
		failInternal(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions")
}

// Delete removes an owned transaction. As with Edit, a foreign or absent id
// redirects without touching anything.
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		c.Redirect(http.StatusFound, "/transactions")
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, id); err != nil {
		if isAppErrorCode(err, apperrors.ErrTransactionNotFound.Code) {
			c.Redirect(http.StatusFound, "/transactions")
			return
		}
		failInternal(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/transactions")
}

// renderForm re-renders an add/edit form with the user's input preserved and
// a validation error line.
func (h *TransactionHandler) renderForm(c *gin.Context, template string, id uint, form TransactionForm, errMsg string) {
	c.HTML(http.StatusBadRequest, template, gin.H{
		"ID":          id,
		"Date":        form.Date,
		"Description": form.Description,
		"Amount":      form.Amount,
		"Type":        form.Type,
		"Error":       errMsg,
	})
}
