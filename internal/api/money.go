package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lifeforge/lifeforge/internal/domain"
)

// ─── Categories (/api/money/categories) ─────────────────────────────────────

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.db.ListCategories(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.MoneyCategory
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return
	}
	if c.Type != domain.TxExpense && c.Type != domain.TxIncome {
		writeError(w, http.StatusBadRequest, "category type must be expense or income")
		return
	}
	if c.Icon == "" {
		c.Icon = "tag"
	}
	c.ID = uuid.New().String()
	c.IsDefault = false // user-created categories are always deletable

	err := s.db.InsertCategory(userFrom(r).ID, c)
	if errors.Is(err, domain.ErrCategoryExists) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	err := s.db.DeleteCategory(userFrom(r).ID, chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrCategoryProtected):
		writeError(w, http.StatusForbidden, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}

// ─── Transactions (/api/money/transactions) ─────────────────────────────────

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if r.URL.Query().Get("all") == "true" {
		limit = 0
	}
	txs, err := s.db.ListTransactions(userFrom(r).ID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, txs)
}

type addTransactionRequest struct {
	CategoryID  string `json:"categoryId"`
	AmountCents int64  `json:"amountCents"`
	Type        string `json:"type"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
	Description string `json:"description,omitempty"`
}

func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	var req addTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, domain.ErrBadAmount.Error())
		return
	}
	if req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "categoryId is required")
		return
	}
	txType := domain.TransactionType(req.Type)
	if txType != domain.TxExpense && txType != domain.TxIncome {
		writeError(w, http.StatusBadRequest, "type must be expense or income")
		return
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse(domain.DateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, domain.ErrBadDate.Error())
			return
		}
		date = parsed
	}

	t := domain.Transaction{
		ID:          uuid.New().String(),
		CategoryID:  req.CategoryID,
		AmountCents: req.AmountCents,
		Type:        txType,
		Date:        date,
		Description: req.Description,
	}
	if err := s.db.InsertTransaction(userFrom(r).ID, t); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// ─── Shared Expenses (/api/money/splits) ────────────────────────────────────

func (s *Server) handleListSplits(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListForUser(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

type addSplitRequest struct {
	Description  string   `json:"description"`
	TotalCents   int64    `json:"totalCents"`
	Category     string   `json:"category,omitempty"`
	Participants []string `json:"participants"` // user IDs, payer implied
}

func (s *Server) handleAddSplit(w http.ResponseWriter, r *http.Request) {
	var req addSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	exp, err := s.ledger.AddExpense(userFrom(r).ID, req.Description, req.Category,
		req.TotalCents, req.Participants)
	switch {
	case errors.Is(err, domain.ErrBadAmount), errors.Is(err, domain.ErrNoParticipants):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusOK, exp)
	}
}

// handleSettleUp marks the caller's own share as paid.
func (s *Server) handleSettleUp(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.SettleUp(userFrom(r).ID, chi.URLParam(r, "id"))
	s.writeSplitResult(w, err)
}

// handleMarkPaid lets the payer mark a participant's share as paid.
func (s *Server) handleMarkPaid(w http.ResponseWriter, r *http.Request) {
	err := s.ledger.MarkPaid(userFrom(r).ID, chi.URLParam(r, "id"), chi.URLParam(r, "userID"))
	s.writeSplitResult(w, err)
}

func (s *Server) writeSplitResult(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNotPayer):
		writeError(w, http.StatusForbidden, err.Error())
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// --- /api/money/balances ---

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := s.ledger.BalancesFor(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

// --- /api/money/users (participant picker) ---

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.db.ListUsers(userFrom(r).ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}
