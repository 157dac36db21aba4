package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/models"
)

func setupAdminRouter(userSvc *mockUserService, txSvc *mockTransactionService) *gin.Engine {
	handler := NewAdminHandler(userSvc, txSvc)
	r := newTestEngine()
	auth := r.Group("", injectIdentity(1, "admin"))
	auth.GET("/admin", handler.Summary)
	return r
}

func TestAdminHandler_Summary(t *testing.T) {
	t.Run("one_row_per_user_over_all_transactions", func(t *testing.T) {
		userSvc := &mockUserService{
			listUsersFn: func() ([]models.User, error) {
				return []models.User{
					{Base: models.Base{ID: 1}, Username: "alice"},
					{Base: models.Base{ID: 2}, Username: "bob"},
				}, nil
			},
		}
		byUser := map[uint][]models.Transaction{
			1: {
				{Amount: 10000, Type: models.TransactionTypeIncome},
				{Amount: 4000, Type: models.TransactionTypeExpense},
			},
			2: {
				{Amount: 2500, Type: models.TransactionTypeExpense},
			},
		}
		txSvc := &mockTransactionService{
			listTransactionsFn: func(userID uint, limit int) ([]models.Transaction, error) {
				if limit != 0 {
					t.Errorf("admin summary must aggregate over all transactions, got limit %d", limit)
				}
				return byUser[userID], nil
			},
		}
		r := setupAdminRouter(userSvc, txSvc)

		rec := doGet(r, "/admin")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, want := range []string{"alice", "60.00", "bob", "-25.00"} {
			if !strings.Contains(body, want) {
				t.Errorf("expected admin summary to contain %q", want)
			}
		}
	})

	t.Run("no_users", func(t *testing.T) {
		r := setupAdminRouter(&mockUserService{}, &mockTransactionService{})

		rec := doGet(r, "/admin")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}
