// Package pendingapprovals lists the partners still waiting for review
// and runs the approve flow. Approval is one-way: a partner never moves
// back to pending from here.
package pendingapprovals

import (
	"context"
	"strconv"

	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
	businessmanagement "marketplace-admin/internal/pages/business-management"
)

// API is the slice of the client this page calls.
type API interface {
	ListBusinessPartners(ctx context.Context) ([]models.BusinessPartner, error)
	UpdateBusinessPartner(ctx context.Context, partner models.BusinessPartner) error
}

// Page holds this screen's independent copy of the partner collection,
// pre-filtered to pending rows.
type Page struct {
	list   *listview.List[models.BusinessPartner]
	api    API
	logger logger.Logger
}

func New(apiClient API, log logger.Logger) *Page {
	list := listview.New("pending-approvals",
		func(p models.BusinessPartner) string { return strconv.FormatInt(p.ID, 10) },
		func(p models.BusinessPartner) []string {
			return []string{p.BusinessName, p.ProprietorName, p.PhoneNumber, strconv.FormatInt(p.ID, 10)}
		},
		log)
	list.AddFilter("status", businessmanagement.AllStatuses, businessmanagement.MatchStatus)
	list.SetFilter("status", businessmanagement.StatusPending)

	return &Page{
		list:   list,
		api:    apiClient,
		logger: log.WithFields(map[string]interface{}{"page": "pending-approvals"}),
	}
}

// Refresh refetches the collection; Visible stays the pending subset.
func (p *Page) Refresh(ctx context.Context) error {
	return p.list.Load(ctx, p.api.ListBusinessPartners)
}

func (p *Page) Visible() []models.BusinessPartner { return p.list.Visible() }
func (p *Page) Error() string                     { return p.list.Error() }
func (p *Page) SetSearch(term string)             { p.list.SetSearch(term) }

func (p *Page) RowState(id int64) listview.RowState {
	return p.list.RowStateOf(strconv.FormatInt(id, 10))
}

// Approve sends the full partner document back with isApproved forced
// true and the reviewed custom details serialized (entries with an empty
// name or detail dropped). On success the local row flips approved
// immediately, without waiting for a refetch, which removes it from the
// visible pending subset.
func (p *Page) Approve(ctx context.Context, id int64, details models.MoreDetails) error {
	rowID := strconv.FormatInt(id, 10)

	var doc models.BusinessPartner
	found := false
	for _, partner := range p.list.Source() {
		if partner.ID == id {
			doc = partner
			found = true
			break
		}
	}
	if !found {
		return apperrors.NewValidationError("no such partner: " + rowID)
	}

	doc.IsApproved = true
	if details != nil {
		doc.MoreDetails = details
	}
	doc.MoreDetails = doc.MoreDetails.Compact()

	return p.list.Mutate(ctx, rowID,
		func(ctx context.Context) error {
			return p.api.UpdateBusinessPartner(ctx, doc)
		},
		func(item *models.BusinessPartner) {
			*item = doc
		})
}

func (p *Page) Close() { p.list.Close() }
