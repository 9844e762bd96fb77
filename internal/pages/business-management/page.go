// Package businessmanagement is the main partner screen: every partner,
// searchable and filterable, with delete, profile editing and the image
// gallery hanging off each row.
package businessmanagement

import (
	"context"
	"strconv"
	"strings"

	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

const (
	// AllServices is the sentinel that disables the service filter.
	AllServices = "All Services"
	// AllStatuses disables the approval-status filter.
	AllStatuses = "All"

	StatusApproved = "Approved"
	StatusPending  = "Pending"
)

// API is the slice of the client this page calls.
type API interface {
	ListBusinessPartners(ctx context.Context) ([]models.BusinessPartner, error)
	UpdateBusinessPartner(ctx context.Context, partner models.BusinessPartner) error
	DeleteBusinessPartner(ctx context.Context, id int64) error
}

// Page owns this screen's copy of the partner collection.
type Page struct {
	list   *listview.List[models.BusinessPartner]
	api    API
	logger logger.Logger
}

func New(apiClient API, log logger.Logger) *Page {
	list := listview.New("business-management", partnerID, partnerSearchFields, log)
	list.AddFilter("service", AllServices, matchService)
	list.AddFilter("status", AllStatuses, MatchStatus)

	return &Page{
		list:   list,
		api:    apiClient,
		logger: log.WithFields(map[string]interface{}{"page": "business-management"}),
	}
}

func partnerID(p models.BusinessPartner) string {
	return strconv.FormatInt(p.ID, 10)
}

func partnerSearchFields(p models.BusinessPartner) []string {
	return []string{
		p.BusinessName,
		p.ProprietorName,
		p.PhoneNumber,
		strconv.FormatInt(p.ID, 10),
	}
}

func matchService(p models.BusinessPartner, value string) bool {
	return strings.EqualFold(p.ServiceProvided, value)
}

// MatchStatus maps the Approved/Pending labels onto isApproved. Shared
// with the pending-approvals screen.
func MatchStatus(p models.BusinessPartner, value string) bool {
	switch value {
	case StatusApproved:
		return p.IsApproved
	case StatusPending:
		return !p.IsApproved
	default:
		return true
	}
}

// Refresh refetches the partner collection.
func (p *Page) Refresh(ctx context.Context) error {
	return p.list.Load(ctx, p.api.ListBusinessPartners)
}

func (p *Page) Visible() []models.BusinessPartner { return p.list.Visible() }
func (p *Page) Error() string                     { return p.list.Error() }
func (p *Page) Loading() bool                     { return p.list.Loading() }
func (p *Page) Len() int                          { return p.list.Len() }

func (p *Page) SetSearch(term string)          { p.list.SetSearch(term) }
func (p *Page) SetService(service string)      { p.list.SetFilter("service", service) }
func (p *Page) SetStatus(status string)        { p.list.SetFilter("status", status) }
func (p *Page) RowState(id int64) listview.RowState {
	return p.list.RowStateOf(strconv.FormatInt(id, 10))
}
func (p *Page) RowError(id int64) string {
	return p.list.RowError(strconv.FormatInt(id, 10))
}

// Find returns this page's copy of one partner.
func (p *Page) Find(id int64) (models.BusinessPartner, bool) {
	for _, partner := range p.list.Source() {
		if partner.ID == id {
			return partner, true
		}
	}
	return models.BusinessPartner{}, false
}

// Delete removes a partner after the operator confirmed against its
// business name. The row is busy for the duration; other rows stay
// interactive.
func (p *Page) Delete(ctx context.Context, id int64, confirmed bool) error {
	return p.list.Delete(ctx, strconv.FormatInt(id, 10), confirmed, func(ctx context.Context) error {
		return p.api.DeleteBusinessPartner(ctx, id)
	})
}

// Edit opens a buffered editor over this page's copy of the partner.
func (p *Page) Edit(id int64) (*Editor, bool) {
	partner, ok := p.Find(id)
	if !ok {
		return nil, false
	}
	return NewEditor(partner), true
}

// CommitEdit saves an editor's draft through the API and reconciles the
// row in place on success.
func (p *Page) CommitEdit(ctx context.Context, editor *Editor) error {
	return editor.Save(ctx, func(ctx context.Context, doc models.BusinessPartner) error {
		rowID := strconv.FormatInt(doc.ID, 10)
		return p.list.Mutate(ctx, rowID,
			func(ctx context.Context) error {
				return p.api.UpdateBusinessPartner(ctx, doc)
			},
			func(item *models.BusinessPartner) {
				*item = doc
			})
	})
}

// Close tears the page down; late fetch completions are dropped.
func (p *Page) Close() { p.list.Close() }
