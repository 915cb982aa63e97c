package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dioritemc/diorite-go/internal/core/domain"
	"github.com/dioritemc/diorite-go/internal/core/palette"
	"github.com/dioritemc/diorite-go/internal/telemetry/logger"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// Observer receives one call per service operation.
type Observer interface {
	ObserveLookup(op string, found bool, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveLookup(string, bool, time.Duration) {}

// LookupService resolves and lists materials.
type LookupService struct {
	palette  *palette.Palette
	observer Observer
	now      func() time.Time
}

// NewLookupService creates a LookupService. A nil palette gets a fresh one
// and a nil observer discards observations.
func NewLookupService(p *palette.Palette, obs Observer) *LookupService {
	if p == nil {
		p = palette.New()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &LookupService{palette: p, observer: obs, now: time.Now}
}

// Palette returns the palette the service records hits in.
func (s *LookupService) Palette() *palette.Palette { return s.palette }

// Resolve returns the material a query refers to.
func (s *LookupService) Resolve(ctx context.Context, q domain.Query) (m *material.Material, err error) {
	defer s.observe("get", s.now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	m, err = material.Parse(q.Ref)
	if err != nil {
		err = classify(q.Ref, err)
		logger.L(ctx).Debug("material lookup failed", "ref", q.Ref, "error", err)
		s.palette.Hit(nil)
		return nil, err
	}
	if q.Item {
		form := m.ItemForm()
		if form == nil {
			return nil, domain.ErrVariantNotFound.WithDetails(fmt.Sprintf("%s has no item form", m))
		}
		m = form
	}
	s.palette.Hit(m)
	return m, nil
}

// Get is Resolve returning the flattened record.
func (s *LookupService) Get(ctx context.Context, q domain.Query) (domain.MaterialRecord, error) {
	m, err := s.Resolve(ctx, q)
	if err != nil {
		return domain.MaterialRecord{}, err
	}
	return domain.NewMaterialRecord(m), nil
}

// ByID looks a material up by numeric id. A negative meta selects the
// default sub-type.
func (s *LookupService) ByID(ctx context.Context, id, meta int) (rec domain.MaterialRecord, err error) {
	defer s.observe("id", s.now(), &err)
	if err := ctx.Err(); err != nil {
		return rec, err
	}
	if id < 0 || id > 0xffff {
		return rec, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("id %d out of range", id))
	}

	f := material.FamilyByID(id)
	if f == nil {
		s.palette.Hit(nil)
		return rec, domain.ErrMaterialNotFound.WithDetails(fmt.Sprintf("id %d", id))
	}
	m := f.Default()
	if meta >= 0 {
		if m = f.Variant(meta); m == nil {
			s.palette.Hit(nil)
			return rec, domain.ErrVariantNotFound.WithDetails(fmt.Sprintf("%s has no meta %d", f.Name(), meta))
		}
	}
	s.palette.Hit(m)
	return domain.NewMaterialRecord(m), nil
}

// List returns the page of materials passing the filter, in id then meta
// order.
func (s *LookupService) List(ctx context.Context, f domain.Filter) (page domain.Page, err error) {
	defer s.observe("list", s.now(), &err)
	if err := ctx.Err(); err != nil {
		return page, err
	}
	if err := f.Validate(); err != nil {
		return page, err
	}

	src := material.Values()
	if f.Variants {
		src = material.AllVariants()
	}
	page.Items = []domain.MaterialRecord{}
	for _, m := range src {
		if !f.Match(m) {
			continue
		}
		page.Total++
		if page.Total <= f.Offset || (f.Limit > 0 && len(page.Items) >= f.Limit) {
			continue
		}
		page.Items = append(page.Items, domain.NewMaterialRecord(m))
	}
	return page, nil
}

// Variants returns every sub-type of the id the reference resolves to.
func (s *LookupService) Variants(ctx context.Context, ref string) ([]domain.MaterialRecord, error) {
	m, err := s.Resolve(ctx, domain.Query{Ref: ref})
	if err != nil {
		return nil, err
	}
	vs := m.Variants()
	out := make([]domain.MaterialRecord, len(vs))
	for i, v := range vs {
		out[i] = domain.NewMaterialRecord(v)
	}
	return out, nil
}

// PaletteEntries returns every palette slot in index order.
func (s *LookupService) PaletteEntries(ctx context.Context) ([]domain.PaletteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return toPaletteRecords(s.palette.Entries()), nil
}

// Hot returns the n most requested materials.
func (s *LookupService) Hot(ctx context.Context, n int) ([]domain.PaletteRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, domain.ErrInvalidArgument.WithDetails("n must be positive")
	}
	return toPaletteRecords(s.palette.Hot(n)), nil
}

func toPaletteRecords(entries []palette.Entry) []domain.PaletteRecord {
	out := make([]domain.PaletteRecord, len(entries))
	for i, e := range entries {
		out[i] = domain.PaletteRecord{
			Index: e.Index,
			Key:   e.Material.Key(),
			Name:  e.Material.String(),
			Hits:  e.Hits,
		}
	}
	return out
}

func (s *LookupService) observe(op string, start time.Time, err *error) {
	s.observer.ObserveLookup(op, *err == nil, s.now().Sub(start))
}

// classify maps a material.Parse error to a domain error. A reference
// whose base resolves but whose sub-type does not is a variant miss.
func classify(ref string, err error) error {
	switch {
	case errors.Is(err, material.ErrInvalidSyntax):
		return domain.ErrInvalidArgument.WithDetails(err.Error()).WithCause(err)
	case errors.Is(err, material.ErrUnknownMaterial):
		if i := strings.LastIndexByte(ref, ':'); i > 0 {
			if _, baseErr := material.Parse(ref[:i]); baseErr == nil {
				return domain.ErrVariantNotFound.WithDetails(strings.TrimSpace(ref)).WithCause(err)
			}
		}
		return domain.ErrMaterialNotFound.WithDetails(strings.TrimSpace(ref)).WithCause(err)
	}
	return domain.ErrInternalServer.WithCause(err)
}
