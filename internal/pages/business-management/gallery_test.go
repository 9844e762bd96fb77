package businessmanagement

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-admin/internal/api"
	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeImageAPI struct {
	stored    []models.Image
	uploadErr error
	deleteErr error
	deleted   []int64
}

func (f *fakeImageAPI) UploadImages(ctx context.Context, businessPartnerID int64, files []api.FilePart) ([]models.Image, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.stored, nil
}

func (f *fakeImageAPI) DeleteImage(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func galleryPartner() models.BusinessPartner {
	return models.BusinessPartner{
		ID: 7,
		Images: []models.Image{
			{ID: 100, URL: "https://cdn/a.jpg"},
		},
	}
}

func pickedFile(name string) []api.FilePart {
	return []api.FilePart{{FileName: name, Content: strings.NewReader("bytes")}}
}

// ==========================
// Upload State Machine Tests
// ==========================

func TestGallery_UploadConfirmsFromResponse(t *testing.T) {
	imageAPI := &fakeImageAPI{stored: []models.Image{{ID: 101, URL: "https://cdn/b.jpg"}}}
	g := NewGallery(galleryPartner(), imageAPI)

	require.NoError(t, g.Upload(context.Background(), pickedFile("b.jpg"), []string{"blob:local-b"}))

	images := g.Images()
	require.Len(t, images, 2)
	assert.Equal(t, ImageConfirmed, images[1].Status)
	assert.Equal(t, int64(101), images[1].ServerID)
	assert.Equal(t, "https://cdn/b.jpg", images[1].URL)
	assert.True(t, g.Deletable(images[1].LocalID))
}

func TestGallery_UploadWithoutRecordsStaysPending(t *testing.T) {
	imageAPI := &fakeImageAPI{stored: nil}
	g := NewGallery(galleryPartner(), imageAPI)

	require.NoError(t, g.Upload(context.Background(), pickedFile("b.jpg"), []string{"blob:local-b"}))

	images := g.Images()
	require.Len(t, images, 2)
	assert.Equal(t, ImagePending, images[1].Status)
	assert.Equal(t, "blob:local-b", images[1].URL, "the local preview shows immediately")
	assert.False(t, g.Deletable(images[1].LocalID),
		"an image without a server identity must not offer delete")
}

func TestGallery_FailedUploadKeepsPreview(t *testing.T) {
	imageAPI := &fakeImageAPI{uploadErr: apperrors.NewNetworkError(assert.AnError)}
	g := NewGallery(galleryPartner(), imageAPI)

	err := g.Upload(context.Background(), pickedFile("b.jpg"), []string{"blob:local-b"})
	require.Error(t, err)

	images := g.Images()
	require.Len(t, images, 2)
	assert.Equal(t, ImagePending, images[1].Status)
}

func TestGallery_ReconcileTerminatesPending(t *testing.T) {
	imageAPI := &fakeImageAPI{stored: nil}
	g := NewGallery(galleryPartner(), imageAPI)
	require.NoError(t, g.Upload(context.Background(), pickedFile("b.jpg"), []string{"blob:local-b"}))

	refreshed := galleryPartner()
	refreshed.Images = append(refreshed.Images, models.Image{ID: 101, URL: "https://cdn/b.jpg"})
	g.Reconcile(refreshed)

	images := g.Images()
	require.Len(t, images, 2)
	for _, img := range images {
		assert.Equal(t, ImageConfirmed, img.Status)
	}
}

// ==========================
// Delete Tests
// ==========================

func TestGallery_DeleteConfirmedImage(t *testing.T) {
	imageAPI := &fakeImageAPI{}
	g := NewGallery(galleryPartner(), imageAPI)
	localID := g.Images()[0].LocalID

	require.NoError(t, g.Delete(context.Background(), localID, true))
	assert.Equal(t, []int64{100}, imageAPI.deleted)
	assert.Empty(t, g.Images())
}

func TestGallery_DeleteGuards(t *testing.T) {
	imageAPI := &fakeImageAPI{stored: nil}
	g := NewGallery(galleryPartner(), imageAPI)
	require.NoError(t, g.Upload(context.Background(), pickedFile("b.jpg"), nil))

	confirmedID := g.Images()[0].LocalID
	pendingID := g.Images()[1].LocalID

	// Unconfirmed intent never fires.
	err := g.Delete(context.Background(), confirmedID, false)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	// Pending images have no server identity to delete.
	err = g.Delete(context.Background(), pendingID, true)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	assert.Empty(t, imageAPI.deleted)
	assert.Len(t, g.Images(), 2)
}

func TestGallery_FailedDeleteKeepsImage(t *testing.T) {
	imageAPI := &fakeImageAPI{deleteErr: apperrors.NewAPIError(500, "boom")}
	g := NewGallery(galleryPartner(), imageAPI)
	localID := g.Images()[0].LocalID

	require.Error(t, g.Delete(context.Background(), localID, true))
	assert.Len(t, g.Images(), 1, "the image goes away on success only")
}
