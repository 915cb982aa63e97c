package handler

import (
	"net/http"
	"strconv"

	"github.com/dioritemc/diorite-go/internal/core/domain"
)

// handlePalette handles GET /v1/palette.
func (h *Handler) handlePalette(w http.ResponseWriter, r *http.Request) {
	recs, err := h.lookup.PaletteEntries(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writePalette(w, r, recs)
}

// handleHot handles GET /v1/palette/hot[?n=10].
func (h *Handler) handleHot(w http.ResponseWriter, r *http.Request) {
	n := h.hotSize
	if s := r.URL.Query().Get("n"); s != "" {
		var err error
		if n, err = strconv.Atoi(s); err != nil {
			h.handleServiceError(w, r, domain.ErrBadRequest.WithDetails("n: not an integer"))
			return
		}
	}
	recs, err := h.lookup.Hot(r.Context(), n)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writePalette(w, r, recs)
}

func (h *Handler) writePalette(w http.ResponseWriter, r *http.Request, recs []domain.PaletteRecord) {
	hits, misses := h.lookup.Palette().Totals()
	h.writeJSON(w, r, http.StatusOK, PaletteResponse{
		Items:  nonNil(recs),
		Hits:   hits,
		Misses: misses,
	})
}
