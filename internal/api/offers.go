package api

import (
	"context"
	"fmt"
	"net/http"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/models"
)

// OfferUpload is the write shape for a sponsored offer. Image and Video
// are optional individually; creation requires at least one.
type OfferUpload struct {
	RedirectionURL string
	Position       string
	Image          *FilePart
	Video          *FilePart
}

func (o OfferUpload) multipart() (fields map[string]string, files []FilePart) {
	fields = map[string]string{
		"redirectionUrl": o.RedirectionURL,
		"position":       o.Position,
	}
	if o.Image != nil {
		img := *o.Image
		img.Field = "image"
		files = append(files, img)
	}
	if o.Video != nil {
		vid := *o.Video
		vid.Field = "video"
		files = append(files, vid)
	}
	return fields, files
}

// ListOffers fetches every sponsored offer.
func (c *Client) ListOffers(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := c.getJSON(ctx, "offers", "/offers", &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// CreateOffer posts a new offer as multipart form data.
func (c *Client) CreateOffer(ctx context.Context, upload OfferUpload) (*models.Offer, error) {
	fields, files := upload.multipart()
	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}

	var created models.Offer
	if err := c.do(ctx, "offers", http.MethodPost, "/offers", body, contentType, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateOffer replaces an offer by id, again as multipart form data.
func (c *Client) UpdateOffer(ctx context.Context, id int64, upload OfferUpload) (*models.Offer, error) {
	fields, files := upload.multipart()
	body, contentType, err := buildMultipart(fields, files)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}

	var updated models.Offer
	if err := c.do(ctx, "offers", http.MethodPut, fmt.Sprintf("/offers/%d", id), body, contentType, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOffer removes one offer by id.
func (c *Client) DeleteOffer(ctx context.Context, id int64) error {
	return c.delete(ctx, "offers", fmt.Sprintf("/offers/%d", id))
}
