package models

import (
	"time"

	"gorm.io/datatypes"
)

// Proposal statuses. Transitions move forward only; none is reversible.
const (
	ProposalDraft    = "draft"
	ProposalSent     = "sent"
	ProposalViewed   = "viewed"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
)

var proposalTransitions = map[string][]string{
	ProposalDraft:  {ProposalSent},
	ProposalSent:   {ProposalViewed, ProposalAccepted, ProposalRejected},
	ProposalViewed: {ProposalAccepted, ProposalRejected},
}

// Proposal is a sales proposal document. CalculatorData is the saved
// Selection+Totals snapshot from the quote engine (jsonb).
type Proposal struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	UserID         string         `json:"-" gorm:"index;not null"`
	Title          string         `json:"title" gorm:"not null"`
	ClientName     string         `json:"client_name"`
	ClientCompany  string         `json:"client_company"`
	ClientEmail    string         `json:"client_email"`
	ClientPhone    string         `json:"client_phone"`
	ClientAddress  string         `json:"client_address"`
	CalculatorType string         `json:"calculator_type"`
	Status         string         `json:"status" gorm:"not null;default:'draft'"`
	CalculatorData datatypes.JSON `json:"calculator_data" gorm:"type:jsonb"`
	Content        string         `json:"content" gorm:"type:text"`
	CoverPhotoURL  string         `json:"cover_photo_url"`
	ViewCount      int            `json:"view_count"`
	CommentCount   int            `json:"comment_count"`
	SentAt         *time.Time     `json:"sent_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// CanTransition reports whether the proposal may move to the given status.
func (p *Proposal) CanTransition(to string) bool {
	return allowed(proposalTransitions, p.Status, to)
}

// Editable reports whether content edits are still allowed.
func (p *Proposal) Editable() bool {
	return p.Status == ProposalDraft
}
