// Package promotions manages business promotions: list, create, delete,
// with a derived position ordering for display.
package promotions

import (
	"context"
	"sort"
	"strconv"

	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/common/validation"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

// API is the slice of the client this page calls.
type API interface {
	ListPromotions(ctx context.Context) ([]models.Promotion, error)
	AddPromotion(ctx context.Context, promotion models.Promotion) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id int64) error
}

// addSchema guards the create form before any call fires.
var addSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"businessId", "position"},
	"properties": map[string]interface{}{
		"businessId": map[string]interface{}{"type": "integer", "minimum": 1},
		"position":   map[string]interface{}{"type": "string", "minLength": 1},
	},
}

type Page struct {
	list   *listview.List[models.Promotion]
	api    API
	logger logger.Logger
}

func New(apiClient API, log logger.Logger) *Page {
	list := listview.New("promotions",
		func(p models.Promotion) string { return strconv.FormatInt(p.ID, 10) },
		func(p models.Promotion) []string {
			return []string{p.Title, strconv.FormatInt(p.BusinessID, 10), strconv.FormatInt(p.ID, 10)}
		},
		log)

	return &Page{
		list:   list,
		api:    apiClient,
		logger: log.WithFields(map[string]interface{}{"page": "promotions"}),
	}
}

func (p *Page) Refresh(ctx context.Context) error {
	return p.list.Load(ctx, p.api.ListPromotions)
}

func (p *Page) Visible() []models.Promotion { return p.list.Visible() }
func (p *Page) Error() string               { return p.list.Error() }
func (p *Page) SetSearch(term string)       { p.list.SetSearch(term) }

// DisplayOrder returns the visible promotions ordered by position.
// Numeric positions compare numerically, everything else as strings;
// the source collection itself is never reordered.
func (p *Page) DisplayOrder() []models.Promotion {
	out := p.list.Visible()
	sort.SliceStable(out, func(i, j int) bool {
		return positionLess(out[i].Position, out[j].Position)
	})
	return out
}

func positionLess(a, b models.Position) bool {
	na, errA := strconv.ParseFloat(a.String(), 64)
	nb, errB := strconv.ParseFloat(b.String(), 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return a.String() < b.String()
}

// Add validates the new promotion client-side, posts it, and appends
// the stored record to the local collection.
func (p *Page) Add(ctx context.Context, promotion models.Promotion) error {
	form := map[string]interface{}{
		"businessId": promotion.BusinessID,
		"position":   promotion.Position.String(),
	}
	if err := validation.Require(form, addSchema); err != nil {
		return err
	}

	created, err := p.api.AddPromotion(ctx, promotion)
	if err != nil {
		return err
	}
	p.list.Append(*created)
	return nil
}

// RowState reports the mutation state for one promotion row.
func (p *Page) RowState(id int64) listview.RowState {
	return p.list.RowStateOf(strconv.FormatInt(id, 10))
}

// Delete removes one promotion after explicit confirmation.
func (p *Page) Delete(ctx context.Context, id int64, confirmed bool) error {
	return p.list.Delete(ctx, strconv.FormatInt(id, 10), confirmed, func(ctx context.Context) error {
		return p.api.DeletePromotion(ctx, id)
	})
}

func (p *Page) Close() { p.list.Close() }
