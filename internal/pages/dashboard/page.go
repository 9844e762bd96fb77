// Package dashboard aggregates the landing-screen numbers: user count,
// partner count, and the animated sum of successful payments.
package dashboard

import (
	"context"
	"sync"

	"marketplace-admin/internal/animation"
	apperrors "marketplace-admin/internal/common/errors"
	"marketplace-admin/internal/common/logger"
	"marketplace-admin/internal/models"
)

// API is the slice of the client this page calls.
type API interface {
	CountUsers(ctx context.Context) (int, error)
	CountBusinessPartners(ctx context.Context) (int, error)
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

// Page holds the aggregated numbers and drives the count-up.
type Page struct {
	mu           sync.Mutex
	userCount    int
	partnerCount int
	payments     []models.Payment
	errMsg       string
	displayed    float64

	api      API
	animator *animation.Animator
	logger   logger.Logger
}

func New(apiClient API, log logger.Logger) *Page {
	p := &Page{
		api:    apiClient,
		logger: log.WithFields(map[string]interface{}{"page": "dashboard"}),
	}
	p.animator = animation.New(animation.DefaultDuration, p.setDisplayed)
	return p
}

func (p *Page) setDisplayed(value float64) {
	p.mu.Lock()
	p.displayed = value
	p.mu.Unlock()
}

// Refresh fetches both counts and the payment collection, then restarts
// the total animation from zero. A failed fetch leaves the previous
// numbers visible and sets the page message.
func (p *Page) Refresh(ctx context.Context) error {
	userCount, err := p.api.CountUsers(ctx)
	if err != nil {
		p.setError(err)
		return err
	}
	partnerCount, err := p.api.CountBusinessPartners(ctx)
	if err != nil {
		p.setError(err)
		return err
	}
	payments, err := p.api.ListPayments(ctx)
	if err != nil {
		p.setError(err)
		return err
	}

	p.mu.Lock()
	p.userCount = userCount
	p.partnerCount = partnerCount
	p.payments = payments
	p.errMsg = ""
	p.mu.Unlock()

	p.animator.Start(p.Total())
	return nil
}

func (p *Page) setError(err error) {
	p.mu.Lock()
	p.errMsg = apperrors.UserMessage(err)
	p.mu.Unlock()
}

// Total sums the successful payments in major currency units. The
// successful classification is the same pure function the payment
// tables use; nothing is cached.
func (p *Page) Total() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	total := 0.0
	for _, payment := range p.payments {
		if payment.Successful() {
			total += payment.AmountMajor()
		}
	}
	return total
}

// Displayed returns the current animation frame of the total.
func (p *Page) Displayed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.displayed
}

func (p *Page) UserCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.userCount
}

func (p *Page) PartnerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.partnerCount
}

func (p *Page) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errMsg
}

func (p *Page) Close() {
	p.animator.Stop()
}
