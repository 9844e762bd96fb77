package businessmanagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeAPI struct {
	partners  []models.BusinessPartner
	listErr   error
	updateErr error
	deleteErr error
	updated   []models.BusinessPartner
	deleted   []int64
}

func (f *fakeAPI) ListBusinessPartners(ctx context.Context) ([]models.BusinessPartner, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.BusinessPartner, len(f.partners))
	copy(out, f.partners)
	return out, nil
}

func (f *fakeAPI) UpdateBusinessPartner(ctx context.Context, partner models.BusinessPartner) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, partner)
	return nil
}

func (f *fakeAPI) DeleteBusinessPartner(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func testPartners() []models.BusinessPartner {
	return []models.BusinessPartner{
		{ID: 1, BusinessName: "Acme Tents", ProprietorName: "A. Sharma", PhoneNumber: "9000000001", ServiceProvided: "Tent House", IsApproved: true},
		{ID: 2, BusinessName: "Bright Lights", ProprietorName: "B. Rao", PhoneNumber: "9000000002", ServiceProvided: "Lighting", IsApproved: false},
		{ID: 3, BusinessName: "City Caterers", ProprietorName: "C. Iyer", PhoneNumber: "9000000003", ServiceProvided: "Catering", IsApproved: true},
	}
}

func createPage(t *testing.T, api *fakeAPI) *Page {
	page := New(api, logger.NewTestLogger(t))
	require.NoError(t, page.Refresh(context.Background()))
	return page
}

// ==========================
// Filter Tests
// ==========================

func TestPage_ServiceAndStatusFilters(t *testing.T) {
	page := createPage(t, &fakeAPI{partners: testPartners()})

	page.SetStatus(StatusApproved)
	visible := page.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, int64(3), visible[1].ID)

	page.SetService("tent house") // case-insensitive
	visible = page.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Acme Tents", visible[0].BusinessName)

	page.SetService(AllServices)
	page.SetStatus(AllStatuses)
	assert.Len(t, page.Visible(), 3)
}

func TestPage_SearchAcrossFields(t *testing.T) {
	page := createPage(t, &fakeAPI{partners: testPartners()})

	page.SetSearch("9000000002")
	visible := page.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bright Lights", visible[0].BusinessName)

	page.SetSearch("iyer")
	visible = page.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, int64(3), visible[0].ID)
}

// ==========================
// Delete Flow Tests
// ==========================

func TestPage_DeleteConfirmedRemovesRow(t *testing.T) {
	api := &fakeAPI{partners: testPartners()}
	page := createPage(t, api)

	require.NoError(t, page.Delete(context.Background(), 2, true))

	assert.Equal(t, []int64{2}, api.deleted)
	visible := page.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, int64(1), visible[0].ID)
	assert.Equal(t, int64(3), visible[1].ID)
}

func TestPage_FailedDeleteKeepsRowAndSurfacesError(t *testing.T) {
	api := &fakeAPI{partners: testPartners(), deleteErr: apperrors.NewAPIError(409, "partner in use")}
	page := createPage(t, api)

	err := page.Delete(context.Background(), 2, true)
	require.Error(t, err)

	assert.Len(t, page.Visible(), 3)
	assert.Equal(t, listview.RowFailed, page.RowState(2))
	assert.Equal(t, "partner in use", page.RowError(2))
}

// ==========================
// Fetch Failure Tests
// ==========================

func TestPage_FetchFailureIsPageScoped(t *testing.T) {
	api := &fakeAPI{listErr: apperrors.NewNetworkError(assert.AnError)}
	page := New(api, logger.NewTestLogger(t))

	err := page.Refresh(context.Background())
	require.Error(t, err)
	assert.NotEmpty(t, page.Error())
	assert.Empty(t, page.Visible(), "first-load failure leaves an empty collection")
}
