package models

import (
	"time"

	"gorm.io/datatypes"
)

// Contract statuses. The normal flow is monotonic forward-only; cancelled
// is reachable from any non-terminal state.
const (
	ContractDraft         = "draft"
	ContractSent          = "sent"
	ContractViewed        = "viewed"
	ContractSigned        = "signed"
	ContractCountersigned = "countersigned"
	ContractCompleted     = "completed"
	ContractCancelled     = "cancelled"
)

var contractTransitions = map[string][]string{
	ContractDraft:         {ContractSent, ContractCancelled},
	ContractSent:          {ContractViewed, ContractSigned, ContractCancelled},
	ContractViewed:        {ContractSigned, ContractCancelled},
	ContractSigned:        {ContractCountersigned, ContractCancelled},
	ContractCountersigned: {ContractCompleted},
}

// Contract is a signable agreement. AccessToken backs the public signing
// URL /c/:token; the client only ever sees the token, never the id.
type Contract struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	UserID             string         `json:"-" gorm:"index;not null"`
	Title              string         `json:"title" gorm:"not null"`
	Content            string         `json:"content" gorm:"type:text"`
	Status             string         `json:"status" gorm:"not null;default:'draft'"`
	ClientName         string         `json:"client_name"`
	ClientCompany      string         `json:"client_company"`
	ClientEmail        string         `json:"client_email"`
	ClientPhone        string         `json:"client_phone"`
	ClientAddress      string         `json:"client_address"`
	Deliverables       datatypes.JSON `json:"deliverables" gorm:"type:jsonb"`
	AccessToken        string         `json:"access_token" gorm:"index"`
	SignerName         string         `json:"signer_name"`
	SignerEmail        string         `json:"signer_email"`
	ClientSignatureURL string         `json:"client_signature_url"`
	UserSignatureURL   string         `json:"user_signature_url"`
	ClientSignedAt     *time.Time     `json:"client_signed_at"`
	UserSignedAt       *time.Time     `json:"user_signed_at"`
	SentAt             *time.Time     `json:"sent_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// CanTransition reports whether the contract may move to the given status.
func (c *Contract) CanTransition(to string) bool {
	return allowed(contractTransitions, c.Status, to)
}

// Editable reports whether title/content/client fields may still change.
// Editing is blocked once the contract leaves draft.
func (c *Contract) Editable() bool {
	return c.Status == ContractDraft
}

// Terminal reports whether the contract reached a final state.
func (c *Contract) Terminal() bool {
	switch c.Status {
	case ContractCountersigned, ContractCompleted, ContractCancelled:
		return true
	}
	return false
}
