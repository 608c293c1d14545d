package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"spendwise/internal/core"
	"spendwise/internal/services"
	"spendwise/internal/storage"
)

// ExpenseRow is one expense rendered in a list.
type ExpenseRow struct {
	ID          int64
	Description string
	Amount      string
	Date        string
	Category    string
}

// CategoryRow is one per-category total.
type CategoryRow struct {
	Category string
	Amount   string
}

// DashboardViewModel holds data for the dashboard page.
type DashboardViewModel struct {
	Username       string
	Total          string
	Recent         []ExpenseRow
	CategoryTotals []CategoryRow
	Error          string
}

// ListViewModel holds data for the expense list page.
type ListViewModel struct {
	Total          string
	Expenses       []ExpenseRow
	CategoryTotals []CategoryRow
}

// FormViewModel holds data for the add/edit expense forms.
type FormViewModel struct {
	IsEdit     bool
	Expense    ExpenseRow
	Categories []core.Category
	Error      string
}

func expenseRow(e core.Expense) ExpenseRow {
	return ExpenseRow{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		Date:        e.Date.String(),
		Category:    string(e.Category),
	}
}

func categoryRows(byCategory []core.CategoryAmount) []CategoryRow {
	rows := make([]CategoryRow, 0, len(byCategory))
	for _, c := range byCategory {
		rows = append(rows, CategoryRow{Category: string(c.Category), Amount: c.Amount.String()})
	}
	return rows
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)
	vm := DashboardViewModel{Username: user.Username, Total: core.Money{}.String()}

	expenses, err := s.expenses.List(r.Context(), user.ID)
	if err != nil {
		// Show the page anyway; an empty dashboard beats a dead one.
		slog.ErrorContext(r.Context(), "Dashboard load failed", "error", err, "user_id", user.ID)
		vm.Error = "Could not load your expenses. Please try again later."
		s.render(w, r, "dashboard.html", vm)
		return
	}

	sum := core.Summarize(expenses)
	vm.Total = sum.Total.String()
	vm.CategoryTotals = categoryRows(sum.ByCategory)
	for i, e := range expenses {
		if i == 5 {
			break
		}
		vm.Recent = append(vm.Recent, expenseRow(e))
	}

	s.render(w, r, "dashboard.html", vm)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	expenses, err := s.expenses.List(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	sum := core.Summarize(expenses)
	vm := ListViewModel{
		Total:          sum.Total.String(),
		CategoryTotals: categoryRows(sum.ByCategory),
	}
	for _, e := range expenses {
		vm.Expenses = append(vm.Expenses, expenseRow(e))
	}

	s.render(w, r, "expenses.html", vm)
}

func (s *Server) handleAddExpenseForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "add_expense.html", FormViewModel{})
}

// handleAddExpense creates an expense and answers in JSON with the category
// the description mapped to.
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	description := sanitizeInput(r.FormValue("description"))
	amount := sanitizeInput(r.FormValue("amount"))
	date := sanitizeInput(r.FormValue("date"))

	e, err := s.expenses.Create(r.Context(), user.ID, description, amount, date)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"status":      "ok",
			"description": e.Description,
			"category":    string(e.Category),
		})
	case errors.Is(err, core.ErrInvalidAmount):
		writeJSONError(w, http.StatusBadRequest, "invalid amount")
	case errors.Is(err, core.ErrEmptyDescription):
		writeJSONError(w, http.StatusBadRequest, "description is required")
	default:
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err, "user_id", user.ID)
		writeJSONError(w, http.StatusInternalServerError, "could not save expense")
	}
}

func (s *Server) handleEditExpenseForm(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}

	e, err := s.expenses.Get(r.Context(), user.ID, id)
	if err != nil {
		s.renderExpenseError(w, r, err, user.ID, id)
		return
	}

	s.render(w, r, "edit_expense.html", FormViewModel{
		IsEdit:     true,
		Expense:    expenseRow(e),
		Categories: core.Categories(),
	})
}

func (s *Server) handleEditExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid expense ID", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	description := sanitizeInput(r.FormValue("description"))
	amount := sanitizeInput(r.FormValue("amount"))
	date := sanitizeInput(r.FormValue("date"))
	category := sanitizeInput(r.FormValue("category"))

	_, err = s.expenses.Update(r.Context(), user.ID, id, description, amount, date, category)
	switch {
	case err == nil:
		http.Redirect(w, r, "/expenses", http.StatusFound)
	case errors.Is(err, core.ErrInvalidAmount), errors.Is(err, core.ErrEmptyDescription):
		e, getErr := s.expenses.Get(r.Context(), user.ID, id)
		if getErr != nil {
			s.renderExpenseError(w, r, getErr, user.ID, id)
			return
		}
		vm := FormViewModel{
			IsEdit:     true,
			Expense:    expenseRow(e),
			Categories: core.Categories(),
			Error:      "Please enter a description and a valid amount.",
		}
		s.render(w, r, "edit_expense.html", vm)
	default:
		s.renderExpenseError(w, r, err, user.ID, id)
	}
}

func (s *Server) renderExpenseError(w http.ResponseWriter, r *http.Request, err error, userID, expenseID int64) {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Expense not found", http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "Expense operation failed",
			"error", err, "user_id", userID, "expense_id", expenseID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleDeleteExpense removes an expense and answers in JSON.
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid expense ID")
		return
	}

	err = s.expenses.Delete(r.Context(), user.ID, id)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "success",
			"message": "Expense deleted",
		})
	case errors.Is(err, services.ErrPermissionDenied):
		writeJSONError(w, http.StatusForbidden, "you do not own this expense")
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "expense not found")
	default:
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "user_id", user.ID, "expense_id", id)
		writeJSONError(w, http.StatusInternalServerError, "could not delete expense")
	}
}

// SummaryViewModel holds data for the summary page.
type SummaryViewModel struct {
	Total string
	Rows  []CategoryRow
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	sum, err := s.expenses.Summarize(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, r, "summary.html", SummaryViewModel{
		Total: sum.Total.String(),
		Rows:  categoryRows(sum.ByCategory),
	})
}

// ShareRow is one category share on the recommendations page.
type ShareRow struct {
	Category   string
	Total      string
	Percentage string
	Message    string
}

// RecommendationsViewModel holds data for the recommendations page.
type RecommendationsViewModel struct {
	Total  string
	Shares []ShareRow
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	user, _ := userFrom(r)

	sum, err := s.expenses.Summarize(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recommendations failed", "error", err, "user_id", user.ID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vm := RecommendationsViewModel{Total: sum.Total.String()}
	for _, share := range sum.Shares {
		vm.Shares = append(vm.Shares, ShareRow{
			Category:   string(share.Category),
			Total:      share.Total.String(),
			Percentage: fmt.Sprintf("%.2f", share.Percentage),
			Message:    share.Message,
		})
	}

	s.render(w, r, "recommendations.html", vm)
}
