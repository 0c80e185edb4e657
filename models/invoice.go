package models

import (
	"time"

	"pitchdesk-backend/utils"
)

// Invoice statuses.
const (
	InvoiceDraft     = "draft"
	InvoiceSent      = "sent"
	InvoiceViewed    = "viewed"
	InvoicePaid      = "paid"
	InvoiceOverdue   = "overdue"
	InvoiceCancelled = "cancelled"
)

var invoiceTransitions = map[string][]string{
	InvoiceDraft:   {InvoiceSent, InvoiceCancelled},
	InvoiceSent:    {InvoiceViewed, InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceViewed:  {InvoicePaid, InvoiceOverdue, InvoiceCancelled},
	InvoiceOverdue: {InvoicePaid, InvoiceCancelled},
}

// Invoice is a billing document, optionally one milestone of a payment
// plan. Totals are always recomputed from the line items before save.
type Invoice struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"-" gorm:"index;not null"`
	InvoiceNumber string     `json:"invoice_number" gorm:"unique"`
	Status        string     `json:"status" gorm:"not null;default:'draft'"`
	ClientName    string     `json:"client_name"`
	ClientCompany string     `json:"client_company"`
	ClientEmail   string     `json:"client_email"`
	Items         []LineItem `json:"line_items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	TaxRate       float64    `json:"tax_rate"`
	Subtotal      float64    `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxAmount     float64    `json:"tax_amount" gorm:"type:numeric(12,2)"`
	Total         float64    `json:"total" gorm:"type:numeric(12,2)"`

	// Milestone k of n against a larger engagement; zero when unscheduled.
	MilestoneNumber int `json:"milestone_number"`
	MilestoneTotal  int `json:"milestone_total"`

	PaymentPlatform string     `json:"payment_platform"`
	PaymentLink     string     `json:"payment_link"`
	SentAt          *time.Time `json:"sent_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type LineItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Amount      float64 `json:"amount" gorm:"type:numeric(12,2)"`
}

// Recalculate rewrites every line item's amount as quantity*unitPrice and
// derives subtotal, tax and total. Amounts are never taken from input.
func (inv *Invoice) Recalculate() {
	var subtotal float64
	for i := range inv.Items {
		inv.Items[i].Amount = utils.Round2(float64(inv.Items[i].Quantity) * inv.Items[i].UnitPrice)
		subtotal += inv.Items[i].Amount
	}
	inv.Subtotal = utils.Round2(subtotal)
	inv.TaxAmount = utils.Round2(inv.Subtotal * inv.TaxRate / 100)
	inv.Total = utils.Round2(inv.Subtotal + inv.TaxAmount)
}

// CanTransition reports whether the invoice may move to the given status.
func (inv *Invoice) CanTransition(to string) bool {
	return allowed(invoiceTransitions, inv.Status, to)
}
