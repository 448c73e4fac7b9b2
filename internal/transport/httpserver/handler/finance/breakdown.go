package finance

import (
	"net/http"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/shopspring/decimal"
)

type categoryTotalResponse struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
}

func (h *Handlers) IncomeByCategory(w http.ResponseWriter, r *http.Request) {
	h.byCategory(w, r, financedomain.KindIncome, "income.by_category")
}

func (h *Handlers) ExpenseByCategory(w http.ResponseWriter, r *http.Request) {
	h.byCategory(w, r, financedomain.KindExpense, "expense.by_category")
}

func (h *Handlers) byCategory(w http.ResponseWriter, r *http.Request, kind financedomain.Kind, op string) {
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
	limit, err := parseIntParam(query.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit")
		return
	}

	totals, err := h.Finance.SumByCategory(r.Context(), ownerID, kind, financedomain.CategoryBreakdownFilter{
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		h.writeServiceError(w, r, op, err, "user_id", ownerID)
		return
	}

	items := make([]categoryTotalResponse, 0, len(totals))
	for _, total := range totals {
		items = append(items, categoryTotalResponse{
			CategoryID:   total.CategoryID,
			CategoryName: total.CategoryName,
			Total:        total.Total,
			Count:        total.Count,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
