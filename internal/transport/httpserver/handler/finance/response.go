package finance

import (
	"errors"
	"net/http"

	financedomain "finance-app-go/internal/domain/finance"
	"finance-app-go/internal/transport/httpserver/handler/common"
	"finance-app-go/internal/transport/httpserver/middleware"
	"finance-app-go/pkg/logger"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	common.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	common.WriteJSON(w, status, payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	return common.DecodeJSON(r, dst)
}

func (h *Handlers) requestLog(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), h.log).WithComponent(logger.ComponentFinance)
}

func (h *Handlers) ownerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}
	return user.ID, true
}

// writeServiceError maps a finance service error onto the response and logs
// it under op.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := h.requestLog(r)

	var validationErr *financedomain.ValidationError
	if errors.As(err, &validationErr) {
		log.BusinessError(op+": validation failed", err, args...)
		writeError(w, http.StatusBadRequest, "invalid_request", validationErr.Field+" "+validationErr.Message)
		return
	}

	status, code := http.StatusInternalServerError, ""
	switch {
	case errors.Is(err, financedomain.ErrTransactionNotFound):
		status, code = http.StatusNotFound, "transaction_not_found"
	case errors.Is(err, financedomain.ErrAccountNotFound):
		status, code = http.StatusNotFound, "account_not_found"
	case errors.Is(err, financedomain.ErrCategoryNotFound):
		status, code = http.StatusNotFound, "category_not_found"
	case errors.Is(err, financedomain.ErrCurrencyNotFound):
		status, code = http.StatusNotFound, "currency_not_found"
	case errors.Is(err, financedomain.ErrAccountInUse):
		status, code = http.StatusConflict, "account_in_use"
	case errors.Is(err, financedomain.ErrCategoryInUse):
		status, code = http.StatusConflict, "category_in_use"
	case errors.Is(err, financedomain.ErrCategoryNameTaken):
		status, code = http.StatusConflict, "category_name_taken"
	case errors.Is(err, financedomain.ErrCurrencyNameTaken):
		status, code = http.StatusConflict, "currency_name_taken"
	case errors.Is(err, financedomain.ErrSharedReadOnly):
		status, code = http.StatusForbidden, "shared_read_only"
	}

	if code == "" {
		log.InternalError(op+": failed", err, args...)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	log.BusinessError(op+": "+err.Error(), err, args...)
	writeError(w, status, code, err.Error())
}
