package finance

import (
	"net/http"
	"strings"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createAccountRequest struct {
	Name              string          `json:"name"`
	CurrencyID        string          `json:"currency_id"`
	Balance           decimal.Decimal `json:"balance"`
	CountsTowardTotal *bool           `json:"counts_toward_total"`
}

type updateAccountRequest struct {
	Name              *string `json:"name"`
	CurrencyID        *string `json:"currency_id"`
	CountsTowardTotal *bool   `json:"counts_toward_total"`
}

type accountResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CurrencyID        string          `json:"currency_id"`
	Balance           decimal.Decimal `json:"balance"`
	CountsTowardTotal bool            `json:"counts_toward_total"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	accounts, err := h.Finance.ListAccounts(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, "accounts.list", err, "user_id", ownerID)
		return
	}

	response := make([]accountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	account, err := h.Finance.GetAccount(r.Context(), ownerID, id)
	if err != nil {
		h.writeServiceError(w, r, "accounts.get", err, "user_id", ownerID, "account_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(*account))
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	counted := true
	if req.CountsTowardTotal != nil {
		counted = *req.CountsTowardTotal
	}

	created, err := h.Finance.CreateAccount(r.Context(), financedomain.CreateAccountInput{
		OwnerID:           ownerID,
		Name:              req.Name,
		CurrencyID:        strings.TrimSpace(req.CurrencyID),
		Balance:           req.Balance,
		CountsTowardTotal: counted,
	})
	if err != nil {
		h.writeServiceError(w, r, "accounts.create", err, "user_id", ownerID)
		return
	}
	writeJSON(w, http.StatusCreated, toAccountResponse(*created))
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	updated, err := h.Finance.UpdateAccount(r.Context(), financedomain.UpdateAccountInput{
		ID:                id,
		OwnerID:           ownerID,
		Name:              req.Name,
		CurrencyID:        req.CurrencyID,
		CountsTowardTotal: req.CountsTowardTotal,
	})
	if err != nil {
		h.writeServiceError(w, r, "accounts.update", err, "user_id", ownerID, "account_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toAccountResponse(*updated))
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	if err := h.Finance.DeleteAccount(r.Context(), ownerID, id); err != nil {
		h.writeServiceError(w, r, "accounts.delete", err, "user_id", ownerID, "account_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) SumAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	totals, err := h.Finance.SumByCurrency(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, "accounts.sum", err, "user_id", ownerID)
		return
	}
	writeJSON(w, http.StatusOK, totals)
}

func toAccountResponse(account financedomain.Account) accountResponse {
	return accountResponse{
		ID:                account.ID,
		Name:              account.Name,
		CurrencyID:        account.CurrencyID,
		Balance:           account.Balance,
		CountsTowardTotal: account.CountsTowardTotal,
		CreatedAt:         account.CreatedAt,
		UpdatedAt:         account.UpdatedAt,
	}
}
