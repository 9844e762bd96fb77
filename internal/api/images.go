package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/models"
)

// UploadImages posts gallery images for a business partner as multipart
// form data (fields: images, businessPartnerId). When the server echoes
// the stored records back they carry the confirmed ids; an empty slice
// means the caller must wait for the next document refresh.
func (c *Client) UploadImages(ctx context.Context, businessPartnerID int64, files []FilePart) ([]models.Image, error) {
	for i := range files {
		files[i].Field = "images"
	}
	body, contentType, err := buildMultipart(map[string]string{
		"businessPartnerId": strconv.FormatInt(businessPartnerID, 10),
	}, files)
	if err != nil {
		return nil, apperrors.NewNetworkError(err)
	}

	var stored []models.Image
	if err := c.do(ctx, "s3-image", http.MethodPost, "/s3-image", body, contentType, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// DeleteImage removes one stored image by its server id.
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	return c.delete(ctx, "s3-image", fmt.Sprintf("/s3-image/%d", id))
}
