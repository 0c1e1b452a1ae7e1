package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"hotel-frontdesk/internal/service"
	"hotel-frontdesk/pkg/response"
)

// CacheHandler lets list views probe and clear their staleness flags.
type CacheHandler struct {
	invalidation *service.InvalidationService
}

func NewCacheHandler(invalidation *service.InvalidationService) *CacheHandler {
	return &CacheHandler{invalidation: invalidation}
}

func (h *CacheHandler) GetStaleness(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	stale, err := h.invalidation.IsStale(r.Context(), tag)
	if err != nil {
		response.InternalServerError(w, "Failed to read staleness flag")
		return
	}

	response.Success(w, http.StatusOK, "", map[string]interface{}{
		"tag":   tag,
		"stale": stale,
	})
}

func (h *CacheHandler) ClearStaleness(w http.ResponseWriter, r *http.Request) {
	tag := mux.Vars(r)["tag"]

	if err := h.invalidation.ClearStale(r.Context(), tag); err != nil {
		response.InternalServerError(w, "Failed to clear staleness flag")
		return
	}

	response.Success(w, http.StatusOK, "Staleness flag cleared", nil)
}
