package handler

import (
	"net/http"
	"time"

	"github.com/dioritemc/diorite-go/internal/infra/buildinfo"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// handleHealth handles GET /health.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:           "healthy",
		Time:             time.Now().UTC().Format(time.RFC3339),
		Version:          buildinfo.Get().Version,
		MinecraftVersion: buildinfo.MinecraftVersion,
		Materials:        material.Count(),
		Variants:         material.VariantCount(),
		PaletteSize:      h.lookup.Palette().Len(),
	}
	if h.status != nil {
		st := h.status()
		resp.Registry = &st
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}
