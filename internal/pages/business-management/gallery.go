package businessmanagement

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"marketplace-admin/internal/api"
	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/models"
)

// ImageStatus is the gallery state machine. A Pending image exists only
// locally: it previews immediately but has no server identity, so it
// cannot be deleted. Confirmed images carry the server id.
type ImageStatus int

const (
	ImagePending ImageStatus = iota
	ImageConfirmed
)

// GalleryImage is one gallery entry. LocalID identifies the entry from
// the moment it is picked; ServerID is zero until confirmed.
type GalleryImage struct {
	LocalID  string
	ServerID int64
	URL      string
	Status   ImageStatus
}

// ImageAPI is the slice of the client the gallery calls.
type ImageAPI interface {
	UploadImages(ctx context.Context, businessPartnerID int64, files []api.FilePart) ([]models.Image, error)
	DeleteImage(ctx context.Context, id int64) error
}

// Gallery manages one partner's images.
type Gallery struct {
	mu        sync.Mutex
	partnerID int64
	images    []GalleryImage
	api       ImageAPI
}

// NewGallery builds the gallery from the partner document's confirmed
// images.
func NewGallery(partner models.BusinessPartner, imageAPI ImageAPI) *Gallery {
	g := &Gallery{partnerID: partner.ID, api: imageAPI}
	for _, img := range partner.Images {
		g.images = append(g.images, GalleryImage{
			LocalID:  uuid.New().String(),
			ServerID: img.ID,
			URL:      img.URL,
			Status:   ImageConfirmed,
		})
	}
	return g
}

// Images returns a snapshot of the gallery in display order.
func (g *Gallery) Images() []GalleryImage {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GalleryImage, len(g.images))
	copy(out, g.images)
	return out
}

// Deletable reports whether the entry has a server identity to delete.
func (g *Gallery) Deletable(localID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, img := range g.images {
		if img.LocalID == localID {
			return img.Status == ImageConfirmed
		}
	}
	return false
}

// Upload previews the picked files immediately as Pending entries, then
// posts them. When the upload response carries the stored records they
// confirm the pending entries in order; when it does not, the entries
// stay Pending until the next Reconcile from a fresh partner document.
func (g *Gallery) Upload(ctx context.Context, files []api.FilePart, previewURLs []string) error {
	if len(files) == 0 {
		return apperrors.NewValidationError("no images selected")
	}

	g.mu.Lock()
	pending := make([]string, 0, len(files))
	for i := range files {
		localID := uuid.New().String()
		url := ""
		if i < len(previewURLs) {
			url = previewURLs[i]
		}
		g.images = append(g.images, GalleryImage{
			LocalID: localID,
			URL:     url,
			Status:  ImagePending,
		})
		pending = append(pending, localID)
	}
	g.mu.Unlock()

	stored, err := g.api.UploadImages(ctx, g.partnerID, files)
	if err != nil {
		// The previews stay; the operator retries or discards them on
		// the next reconcile.
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i, localID := range pending {
		if i >= len(stored) {
			break
		}
		for j := range g.images {
			if g.images[j].LocalID == localID {
				g.images[j].ServerID = stored[i].ID
				g.images[j].URL = stored[i].URL
				g.images[j].Status = ImageConfirmed
				break
			}
		}
	}
	return nil
}

// Delete removes a confirmed image after explicit confirmation. The
// local entry goes away on success only.
func (g *Gallery) Delete(ctx context.Context, localID string, confirmed bool) error {
	if !confirmed {
		return apperrors.NewValidationError("delete requires confirmation")
	}

	g.mu.Lock()
	var serverID int64
	found := false
	for _, img := range g.images {
		if img.LocalID == localID {
			if img.Status != ImageConfirmed {
				g.mu.Unlock()
				return apperrors.NewValidationError("image is not yet confirmed by the server")
			}
			serverID = img.ServerID
			found = true
			break
		}
	}
	g.mu.Unlock()
	if !found {
		return apperrors.NewValidationError("no such image: " + localID)
	}

	if err := g.api.DeleteImage(ctx, serverID); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.images {
		if g.images[i].LocalID == localID {
			g.images = append(g.images[:i], g.images[i+1:]...)
			break
		}
	}
	return nil
}

// Reconcile rebuilds the gallery from a freshly fetched document. This
// is the terminating condition for entries the upload response could
// not confirm.
func (g *Gallery) Reconcile(partner models.BusinessPartner) {
	g.mu.Lock()
	defer g.mu.Unlock()
	images := make([]GalleryImage, 0, len(partner.Images))
	for _, img := range partner.Images {
		images = append(images, GalleryImage{
			LocalID:  uuid.New().String(),
			ServerID: img.ID,
			URL:      img.URL,
			Status:   ImageConfirmed,
		})
	}
	g.images = images
}
