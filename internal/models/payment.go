package models

import (
	"fmt"
	"strings"
	"time"
)

// Payment is a subscription payment as returned by payment/all. Amount
// is in minor currency units (paise); divide by 100 for display.
type Payment struct {
	ID        int64       `json:"id"`
	Amount    int64       `json:"amount"`
	Currency  string      `json:"currency"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiredAt *time.Time  `json:"expiredAt,omitempty"`
	PlanType  string      `json:"planType,omitempty"`
	User      PaymentUser `json:"user"`
}

// PaymentUser is the back-reference a payment carries to its payer.
type PaymentUser struct {
	Name              string `json:"name"`
	PhoneNumber       string `json:"phoneNumber"`
	BusinessPartnerID int64  `json:"businessPartnerId"`
}

// successStatuses is the exact set of status strings that classify a
// payment as successful, compared case-insensitively.
var successStatuses = map[string]struct{}{
	"success":   {},
	"paid":      {},
	"completed": {},
}

// Successful reports whether the payment counts toward totals. This is
// recomputed wherever needed, never cached on the struct.
func (p Payment) Successful() bool {
	_, ok := successStatuses[strings.ToLower(p.Status)]
	return ok
}

// AmountMajor converts the minor-unit amount to major currency units.
func (p Payment) AmountMajor() float64 {
	return float64(p.Amount) / 100
}

// FormatAmount renders the amount the way the payment tables display it.
func (p Payment) FormatAmount() string {
	return fmt.Sprintf("%.2f", p.AmountMajor())
}

// PlanLabel derives the display label for the payment's plan. Payments
// predating plan types carry no planType and show as Legacy.
func (p Payment) PlanLabel() string {
	if p.PlanType == "" {
		return "Legacy"
	}
	return p.PlanType
}
