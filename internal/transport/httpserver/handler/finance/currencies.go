package finance

import (
	"net/http"
	"strings"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/go-chi/chi/v5"
)

type createCurrencyRequest struct {
	Name string `json:"name"`
}

type currencyResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Shared bool   `json:"shared"`
}

func (h *Handlers) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	currencies, err := h.Finance.ListCurrencies(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(w, r, "currencies.list", err, "user_id", ownerID)
		return
	}

	response := make([]currencyResponse, 0, len(currencies))
	for _, currency := range currencies {
		response = append(response, toCurrencyResponse(currency))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCurrency(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	currency, err := h.Finance.GetCurrency(r.Context(), ownerID, id)
	if err != nil {
		h.writeServiceError(w, r, "currencies.get", err, "user_id", ownerID, "currency_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyResponse(*currency))
}

func (h *Handlers) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	var req createCurrencyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	created, err := h.Finance.CreateCurrency(r.Context(), financedomain.CreateCurrencyInput{
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		h.writeServiceError(w, r, "currencies.create", err, "user_id", ownerID)
		return
	}
	writeJSON(w, http.StatusCreated, toCurrencyResponse(*created))
}

func toCurrencyResponse(currency financedomain.Currency) currencyResponse {
	return currencyResponse{
		ID:     currency.ID,
		Name:   currency.Name,
		Shared: currency.OwnerID == nil,
	}
}
