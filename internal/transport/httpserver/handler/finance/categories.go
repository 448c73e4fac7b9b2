package finance

import (
	"net/http"
	"strings"
	"time"

	financedomain "finance-app-go/internal/domain/finance"
	"github.com/go-chi/chi/v5"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type updateCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Shared    bool      `json:"shared"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	kind := financedomain.Kind(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind"))))
	categories, err := h.Finance.ListCategories(r.Context(), ownerID, kind)
	if err != nil {
		h.writeServiceError(w, r, "categories.list", err, "user_id", ownerID)
		return
	}

	response := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	category, err := h.Finance.GetCategory(r.Context(), ownerID, id)
	if err != nil {
		h.writeServiceError(w, r, "categories.get", err, "user_id", ownerID, "category_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*category))
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	created, err := h.Finance.CreateCategory(r.Context(), financedomain.CreateCategoryInput{
		OwnerID: ownerID,
		Name:    req.Name,
		Kind:    financedomain.Kind(strings.ToLower(strings.TrimSpace(req.Kind))),
	})
	if err != nil {
		h.writeServiceError(w, r, "categories.create", err, "user_id", ownerID)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(*created))
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	updated, err := h.Finance.UpdateCategory(r.Context(), financedomain.UpdateCategoryInput{
		ID:      id,
		OwnerID: ownerID,
		Name:    req.Name,
	})
	if err != nil {
		h.writeServiceError(w, r, "categories.update", err, "user_id", ownerID, "category_id", id)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(*updated))
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	ownerID, ok := h.ownerID(w, r)
	if !ok {
		return
	}

	if err := h.Finance.DeleteCategory(r.Context(), ownerID, id); err != nil {
		h.writeServiceError(w, r, "categories.delete", err, "user_id", ownerID, "category_id", id)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toCategoryResponse(category financedomain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Kind:      string(category.Kind),
		Shared:    category.Shared(),
		CreatedAt: category.CreatedAt,
	}
}
