// Package subscriptions is the payments screen: every payment with its
// derived plan label, filterable by status tab, month and calendar
// date, plus the animated successful-payments total.
package subscriptions

import (
	"context"
	"strconv"

	"marketplace-admin/internal/animation"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/listview"
	"marketplace-admin/internal/models"
)

const (
	// TabAll disables the status tab filter.
	TabAll = "All"
	// TabSuccessful keeps only successfully classified payments.
	TabSuccessful = "Successful"
	// TabUnsuccessful keeps the rest.
	TabUnsuccessful = "Unsuccessful"

	// AllMonths and AnyDate are the sentinels for the time filters.
	AllMonths = "All Months"
	AnyDate   = ""

	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// API is the slice of the client this page calls.
type API interface {
	ListPayments(ctx context.Context) ([]models.Payment, error)
	DeletePayment(ctx context.Context, id int64) error
}

// Page holds the payment collection and the animated total.
type Page struct {
	list     *listview.List[models.Payment]
	api      API
	animator *animation.Animator
	logger   logger.Logger
}

// New creates the page. onTotalFrame receives every frame of the
// count-up whenever the filtered total changes.
func New(apiClient API, onTotalFrame func(value float64), log logger.Logger) *Page {
	list := listview.New("subscriptions",
		func(p models.Payment) string { return strconv.FormatInt(p.ID, 10) },
		func(p models.Payment) []string {
			return []string{p.User.Name, p.User.PhoneNumber, strconv.FormatInt(p.ID, 10)}
		},
		log)
	list.AddFilter("tab", TabAll, matchTab)
	list.AddFilter("month", AllMonths, matchMonth)
	list.AddFilter("date", AnyDate, matchDate)

	return &Page{
		list:     list,
		api:      apiClient,
		animator: animation.New(animation.DefaultDuration, onTotalFrame),
		logger:   log.WithFields(map[string]interface{}{"page": "subscriptions"}),
	}
}

func matchTab(p models.Payment, value string) bool {
	switch value {
	case TabSuccessful:
		return p.Successful()
	case TabUnsuccessful:
		return !p.Successful()
	default:
		return true
	}
}

func matchMonth(p models.Payment, value string) bool {
	return p.CreatedAt.Format(monthLayout) == value
}

func matchDate(p models.Payment, value string) bool {
	return p.CreatedAt.Format(dateLayout) == value
}

// Refresh refetches payments and restarts the total animation.
func (p *Page) Refresh(ctx context.Context) error {
	err := p.list.Load(ctx, p.api.ListPayments)
	if err == nil {
		p.animator.Start(p.Total())
	}
	return err
}

func (p *Page) Visible() []models.Payment { return p.list.Visible() }
func (p *Page) Error() string             { return p.list.Error() }
func (p *Page) SetSearch(term string)     { p.list.SetSearch(term) }

// SetTab switches the status tab and re-animates the total from zero.
func (p *Page) SetTab(tab string) {
	p.list.SetFilter("tab", tab)
	p.animator.Start(p.Total())
}

// Tab returns the currently selected status tab.
func (p *Page) Tab() string {
	return p.list.FilterValue("tab")
}

// SetMonth filters to one calendar month (format 2006-01) and
// re-animates the total.
func (p *Page) SetMonth(month string) {
	p.list.SetFilter("month", month)
	p.animator.Start(p.Total())
}

// SetDate filters to one calendar date (format 2006-01-02) and
// re-animates the total.
func (p *Page) SetDate(date string) {
	p.list.SetFilter("date", date)
	p.animator.Start(p.Total())
}

// Total sums the successful payments among the visible rows, converted
// to major currency units. Classification is recomputed on every call.
func (p *Page) Total() float64 {
	total := 0.0
	for _, payment := range p.list.Visible() {
		if payment.Successful() {
			total += payment.AmountMajor()
		}
	}
	return total
}

// RowState reports the mutation state for one payment row.
func (p *Page) RowState(id int64) listview.RowState {
	return p.list.RowStateOf(strconv.FormatInt(id, 10))
}

// Delete removes one payment record after explicit confirmation.
func (p *Page) Delete(ctx context.Context, id int64, confirmed bool) error {
	err := p.list.Delete(ctx, strconv.FormatInt(id, 10), confirmed, func(ctx context.Context) error {
		return p.api.DeletePayment(ctx, id)
	})
	if err == nil {
		p.animator.Start(p.Total())
	}
	return err
}

func (p *Page) Close() {
	p.animator.Stop()
	p.list.Close()
}
