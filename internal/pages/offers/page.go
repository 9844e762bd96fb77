// Package offers manages sponsored profile slots. Writes go up as
// multipart form data carrying the media files.
package offers

import (
	"context"
	"strconv"

	"marketplace-admin/internal/api"
	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/common/validation"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

// API is the slice of the client this page calls.
type API interface {
	ListOffers(ctx context.Context) ([]models.Offer, error)
	CreateOffer(ctx context.Context, upload api.OfferUpload) (*models.Offer, error)
	UpdateOffer(ctx context.Context, id int64, upload api.OfferUpload) (*models.Offer, error)
	DeleteOffer(ctx context.Context, id int64) error
}

// createSchema guards the create form before any call fires. Media
// presence is checked separately since the files never enter the form.
var createSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"position"},
	"properties": map[string]interface{}{
		"position":       map[string]interface{}{"type": "string", "minLength": 1},
		"redirectionUrl": map[string]interface{}{"type": "string"},
	},
}

type Page struct {
	list   *listview.List[models.Offer]
	api    API
	logger logger.Logger
}

func New(apiClient API, log logger.Logger) *Page {
	list := listview.New("offers",
		func(o models.Offer) string { return strconv.FormatInt(o.ID, 10) },
		func(o models.Offer) []string {
			return []string{o.RedirectionURL, o.Position.String(), strconv.FormatInt(o.ID, 10)}
		},
		log)

	return &Page{
		list:   list,
		api:    apiClient,
		logger: log.WithFields(map[string]interface{}{"page": "offers"}),
	}
}

func (p *Page) Refresh(ctx context.Context) error {
	return p.list.Load(ctx, p.api.ListOffers)
}

func (p *Page) Visible() []models.Offer { return p.list.Visible() }
func (p *Page) Error() string           { return p.list.Error() }

func validateUpload(upload api.OfferUpload) error {
	form := map[string]interface{}{
		"position":       upload.Position,
		"redirectionUrl": upload.RedirectionURL,
	}
	if err := validation.Require(form, createSchema); err != nil {
		return err
	}
	if upload.Image == nil && upload.Video == nil {
		return apperrors.NewValidationError("an offer needs an image or a video")
	}
	return nil
}

// Create validates and posts a new offer, then appends the stored
// record locally.
func (p *Page) Create(ctx context.Context, upload api.OfferUpload) error {
	if err := validateUpload(upload); err != nil {
		return err
	}

	created, err := p.api.CreateOffer(ctx, upload)
	if err != nil {
		return err
	}
	p.list.Append(*created)
	return nil
}

// Update replaces one offer and reconciles the row from the response.
func (p *Page) Update(ctx context.Context, id int64, upload api.OfferUpload) error {
	if err := validateUpload(upload); err != nil {
		return err
	}

	rowID := strconv.FormatInt(id, 10)
	var updated *models.Offer
	return p.list.Mutate(ctx, rowID,
		func(ctx context.Context) error {
			var err error
			updated, err = p.api.UpdateOffer(ctx, id, upload)
			return err
		},
		func(item *models.Offer) {
			if updated != nil {
				*item = *updated
			}
		})
}

// RowState reports the mutation state for one offer row.
func (p *Page) RowState(id int64) listview.RowState {
	return p.list.RowStateOf(strconv.FormatInt(id, 10))
}

// Delete removes one offer after explicit confirmation.
func (p *Page) Delete(ctx context.Context, id int64, confirmed bool) error {
	return p.list.Delete(ctx, strconv.FormatInt(id, 10), confirmed, func(ctx context.Context) error {
		return p.api.DeleteOffer(ctx, id)
	})
}

func (p *Page) Close() { p.list.Close() }
