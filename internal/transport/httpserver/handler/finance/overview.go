package finance

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

type overviewResponse struct {
	AccountSum map[string]decimal.Decimal `json:"account_sum"`
	IncomeSum  decimal.Decimal            `json:"income_sum"`
	ExpenseSum decimal.Decimal            `json:"expense_sum"`
	StartDate  time.Time                  `json:"start_date"`
	EndDate    time.Time                  `json:"end_date"`
}

func (h *Handlers) Overview(w http.ResponseWriter, r *http.Request) {
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

	overview, err := h.Finance.Overview(r.Context(), ownerID, from, to)
	if err != nil {
		h.writeServiceError(w, r, "overview.get", err, "user_id", ownerID)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		AccountSum: overview.AccountSum,
		IncomeSum:  overview.IncomeSum,
		ExpenseSum: overview.ExpenseSum,
		StartDate:  overview.From,
		EndDate:    overview.To,
	})
}
