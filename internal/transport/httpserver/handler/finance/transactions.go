package finance

import (
	"net/http"
	"strings"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 100

type createTransactionRequest struct {
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	CategoryID   string          `json:"category_id"`
	AccountID    string          `json:"account_id"`
	Counterparty string          `json:"counterparty"`
	Company      string          `json:"company"`
	Person       string          `json:"person"`
}

type updateTransactionRequest struct {
	Title        *string          `json:"title"`
	Amount       *decimal.Decimal `json:"amount"`
	Date         *string          `json:"date"`
	CategoryID   *string          `json:"category_id"`
	AccountID    *string          `json:"account_id"`
	Counterparty *string          `json:"counterparty"`
	Company      *string          `json:"company"`
	Person       *string          `json:"person"`
}

type transactionResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Title        string          `json:"title"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	CategoryID   string          `json:"category_id"`
	AccountID    string          `json:"account_id"`
	Counterparty string          `json:"counterparty"`
	Company      *string         `json:"company,omitempty"`
	Person       *string         `json:"person,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type transactionListResponse struct {
	Items  []transactionResponse `json:"items"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

func (h *Handlers) ListIncome(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, financedomain.KindIncome)
}

func (h *Handlers) GetIncome(w http.ResponseWriter, r *http.Request) {
	h.getTransaction(w, r, financedomain.KindIncome)
}

func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, financedomain.KindIncome)
}

func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	h.updateTransaction(w, r, financedomain.KindIncome)
}

func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	h.deleteTransaction(w, r, financedomain.KindIncome)
}

func (h *Handlers) ListExpense(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, financedomain.KindExpense)
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	h.getTransaction(w, r, financedomain.KindExpense)
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	h.createTransaction(w, r, financedomain.KindExpense)
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	h.updateTransaction(w, r, financedomain.KindExpense)
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	h.deleteTransaction(w, r, financedomain.KindExpense)
}

func (h *Handlers) listTransactions(w http.ResponseWriter, r *http.Request, kind financedomain.Kind) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := parseStartParam(query.Get("start_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid start_date")
		return
	}
	to, err := parseEndParam(query.Get("end_date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid end_date")
		return
	}
	limit, err := parseIntParam(query.Get("limit"), defaultListLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}
	offset, err := parseIntParam(query.Get("offset"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid offset")
		return
	}

	filter := financedomain.TransactionFilter{
		From:       from,
		To:         to,
		CategoryID: strings.TrimSpace(query.Get("category_id")),
		Limit:      limit,
		Offset:     offset,
	}

	items, total, err := h.Finance.ListTransactions(r.Context(), ownerID, kind, filter)
	if err != nil {
		h.writeServiceError(w, r, string(kind)+".list", err, "user_id", ownerID)
		return
	}

	response := transactionListResponse{
		Items:  make([]transactionResponse, 0, len(items)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, item := range items {
		response.Items = append(response.Items, toTransactionResponse(item))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) getTransaction(w http.ResponseWriter, r *http.Request, kind financedomain.Kind) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	transaction, err := h.Finance.GetTransaction(r.Context(), ownerID, kind, id)
	if err != nil {
		h.writeServiceError(w, r, string(kind)+".get", err, "user_id", ownerID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*transaction))
}

func (h *Handlers) createTransaction(w http.ResponseWriter, r *http.Request, kind financedomain.Kind) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	var occurredAt time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, _, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
			return
		}
		occurredAt = parsed
	}

	created, err := h.Finance.CreateTransaction(r.Context(), financedomain.CreateTransactionInput{
		OwnerID:      ownerID,
		Kind:         kind,
		Title:        req.Title,
		Amount:       req.Amount,
		OccurredAt:   occurredAt,
		CategoryID:   strings.TrimSpace(req.CategoryID),
		AccountID:    strings.TrimSpace(req.AccountID),
		Counterparty: counterparty(kind, req.Counterparty, req.Company, req.Person),
	})
	if err != nil {
		h.writeServiceError(w, r, string(kind)+".create", err, "user_id", ownerID, "account_id", req.AccountID)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponse(*created))
}

func (h *Handlers) updateTransaction(w http.ResponseWriter, r *http.Request, kind financedomain.Kind) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req updateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	input := financedomain.UpdateTransactionInput{
		ID:         id,
		OwnerID:    ownerID,
		Kind:       kind,
		Title:      req.Title,
		Amount:     req.Amount,
		CategoryID: req.CategoryID,
		AccountID:  req.AccountID,
	}
	if req.Date != nil {
		parsed, _, err := parseDate(*req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid date")
			return
		}
		input.OccurredAt = &parsed
	}
	if req.Counterparty != nil || req.Company != nil || req.Person != nil {
		value := counterparty(kind, deref(req.Counterparty), deref(req.Company), deref(req.Person))
		input.Counterparty = &value
	}

	updated, err := h.Finance.UpdateTransaction(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, string(kind)+".update", err, "user_id", ownerID, "id", id)
		return
	}

	writeJSON(w, http.StatusOK, toTransactionResponse(*updated))
}

func (h *Handlers) deleteTransaction(w http.ResponseWriter, r *http.Request, kind financedomain.Kind) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	if err := h.Finance.DeleteTransaction(r.Context(), ownerID, kind, id); err != nil {
		h.writeServiceError(w, r, string(kind)+".delete", err, "user_id", ownerID, "id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// counterparty prefers the generic field and falls back to the kind-specific
// one: company for income, person for expense.
func counterparty(kind financedomain.Kind, generic, company, person string) string {
	if generic != "" {
		return generic
	}
	if kind == financedomain.KindIncome {
		return company
	}
	return person
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func toTransactionResponse(t financedomain.Transaction) transactionResponse {
	response := transactionResponse{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Title:        t.Title,
		Amount:       t.Amount,
		Date:         t.OccurredAt,
		CategoryID:   t.CategoryID,
		AccountID:    t.AccountID,
		Counterparty: t.Counterparty,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	party := t.Counterparty
	if t.Kind == financedomain.KindIncome {
		response.Company = &party
	} else {
		response.Person = &party
	}
	return response
}
