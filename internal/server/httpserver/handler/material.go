package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/dioritemc/diorite-go/internal/core/domain"
)

// handleListMaterials handles GET /v1/materials.
//
// Query parameters: kind, prefix, wood, color, durable, variants, offset, limit.
func (h *Handler) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.Filter{
		Kind:   q.Get("kind"),
		Prefix: q.Get("prefix"),
		Wood:   q.Get("wood"),
		Color:  q.Get("color"),
	}
	var err error
	if f.Durable, err = boolParam(q.Get("durable")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if f.Variants, err = boolParam(q.Get("variants")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if f.Offset, err = intParam("offset", q.Get("offset")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if f.Limit, err = intParam("limit", q.Get("limit")); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	page, err := h.lookup.List(r.Context(), f)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ListMaterialsResponse{
		Items:  nonNil(page.Items),
		Total:  page.Total,
		Offset: f.Offset,
		Limit:  f.Limit,
	})
}

// handleGetMaterial handles GET /v1/materials/{ref}[?item=true].
func (h *Handler) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	item, err := boolParam(r.URL.Query().Get("item"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	rec, err := h.lookup.Get(r.Context(), domain.Query{Ref: r.PathValue("ref"), Item: item})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec)
}

// handleVariants handles GET /v1/materials/{ref}/variants.
func (h *Handler) handleVariants(w http.ResponseWriter, r *http.Request) {
	recs, err := h.lookup.Variants(r.Context(), r.PathValue("ref"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, VariantsResponse{Items: recs})
}

// handleByID handles GET /v1/ids/{id} and GET /v1/ids/{id}/{meta}.
func (h *Handler) handleByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.handleServiceError(w, r, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("id %q", r.PathValue("id"))))
		return
	}
	meta := -1
	if s := r.PathValue("meta"); s != "" {
		if meta, err = strconv.Atoi(s); err != nil || meta < 0 {
			h.handleServiceError(w, r, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("meta %q", s)))
			return
		}
	}
	rec, err := h.lookup.ByID(r.Context(), id, meta)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, rec)
}

func boolParam(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, domain.ErrBadRequest.WithDetails(fmt.Sprintf("not a boolean: %q", s))
	}
	return b, nil
}

func intParam(name, s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.ErrBadRequest.WithDetails(fmt.Sprintf("%s: not an integer: %q", name, s))
	}
	return n, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
