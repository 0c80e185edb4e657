package controllers

import (
	"encoding/json"
	"time"

	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"
	"pitchdesk-backend/pricing"
	"pitchdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type proposalCreateDTO struct {
	Title          string             `json:"title" validate:"required"`
	ClientName     string             `json:"client_name"`
	ClientCompany  string             `json:"client_company"`
	ClientEmail    string             `json:"client_email" validate:"omitempty,email"`
	ClientPhone    string             `json:"client_phone"`
	ClientAddress  string             `json:"client_address"`
	CalculatorType string             `json:"calculator_type"`
	Content        string             `json:"content"`
	CoverPhotoURL  string             `json:"cover_photo_url"`
	Selection      *pricing.Selection `json:"selection"`
	AddOns         *pricing.AddOns    `json:"add_ons"`
	ContractTerm   string             `json:"contract_term" validate:"omitempty,oneof=6 12"`
}

type proposalPatchDTO struct {
	Title          *string `json:"title"`
	ClientName     *string `json:"client_name"`
	ClientCompany  *string `json:"client_company"`
	ClientEmail    *string `json:"client_email" validate:"omitempty,email"`
	ClientPhone    *string `json:"client_phone"`
	ClientAddress  *string `json:"client_address"`
	CalculatorType *string `json:"calculator_type"`
	Content        *string `json:"content"`
	CoverPhotoURL  *string `json:"cover_photo_url"`

	Selection    *pricing.Selection `json:"selection"`
	AddOns       *pricing.AddOns    `json:"add_ons"`
	ContractTerm *string            `json:"contract_term" validate:"omitempty,oneof=6 12"`
}

// snapshotJSON recomputes totals server-side and marshals the calculator
// snapshot. Client-supplied totals are never trusted.
func snapshotJSON(sel pricing.Selection, addOns pricing.AddOns, term string) (datatypes.JSON, error) {
	if term == "" {
		term = pricing.TermSixMonths
	}
	snap := pricing.Snapshot{
		Selection: sel,
		AddOns:    addOns,
		Term:      term,
		Totals:    pricing.ComputeTotals(sel, addOns, term, pricing.Default),
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func findOwnedProposal(c *fiber.Ctx, proposal *models.Proposal) error {
	err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), currentUserID(c)).First(proposal).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	return err
}

func CreateProposal(c *fiber.Ctx) error {
	var data proposalCreateDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	proposal := models.Proposal{
		UserID:         currentUserID(c),
		Title:          data.Title,
		ClientName:     data.ClientName,
		ClientCompany:  data.ClientCompany,
		ClientEmail:    data.ClientEmail,
		ClientPhone:    data.ClientPhone,
		ClientAddress:  data.ClientAddress,
		CalculatorType: data.CalculatorType,
		Content:        data.Content,
		CoverPhotoURL:  data.CoverPhotoURL,
		Status:         models.ProposalDraft,
	}

	if data.Selection != nil || data.AddOns != nil {
		var sel pricing.Selection
		var addOns pricing.AddOns
		if data.Selection != nil {
			sel = *data.Selection
		}
		if data.AddOns != nil {
			addOns = *data.AddOns
		}
		snap, err := snapshotJSON(sel, addOns, data.ContractTerm)
		if err != nil {
			return err
		}
		proposal.CalculatorData = snap
	}

	if err := database.DB.Create(&proposal).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create proposal",
			"error":   err.Error(),
		})
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(proposal)
}

func GetProposals(c *fiber.Ctx) error {
	var proposals []models.Proposal
	database.DB.Where("user_id = ?", currentUserID(c)).Order("updated_at DESC").Find(&proposals)
	return c.JSON(fiber.Map{
		"proposals": proposals,
	})
}

func GetProposal(c *fiber.Ctx) error {
	var proposal models.Proposal
	if err := findOwnedProposal(c, &proposal); err != nil {
		return err
	}
	return c.JSON(proposal)
}

func UpdateProposal(c *fiber.Ctx) error {
	var proposal models.Proposal
	if err := findOwnedProposal(c, &proposal); err != nil {
		return err
	}
	if !proposal.Editable() {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "proposal can only be edited in draft",
		})
	}

	var patch proposalPatchDTO
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	delete(updates, "selection")
	delete(updates, "add_ons")
	delete(updates, "contract_term")

	// Any calculator input change rewrites the whole snapshot.
	if patch.Selection != nil || patch.AddOns != nil || patch.ContractTerm != nil {
		var prev pricing.Snapshot
		if len(proposal.CalculatorData) > 0 {
			_ = json.Unmarshal(proposal.CalculatorData, &prev)
		}
		if patch.Selection != nil {
			prev.Selection = *patch.Selection
		}
		if patch.AddOns != nil {
			prev.AddOns = *patch.AddOns
		}
		if patch.ContractTerm != nil {
			prev.Term = *patch.ContractTerm
		}
		snap, err := snapshotJSON(prev.Selection, prev.AddOns, prev.Term)
		if err != nil {
			return err
		}
		updates["calculator_data"] = snap
	}

	if len(updates) == 0 {
		return c.JSON(proposal)
	}

	if err := database.DB.Model(&proposal).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not update proposal",
			"error":   err.Error(),
		})
	}
	return c.JSON(proposal)
}

func DeleteProposal(c *fiber.Ctx) error {
	var proposal models.Proposal
	if err := findOwnedProposal(c, &proposal); err != nil {
		return err
	}
	if err := database.DB.Delete(&proposal).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

// SendProposal moves a draft to sent, creates a share link if none exists,
// and emails it to the client. Nothing is persisted when the email fails.
func SendProposal(c *fiber.Ctx) error {
	var proposal models.Proposal
	if err := findOwnedProposal(c, &proposal); err != nil {
		return err
	}
	if proposal.ClientEmail == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "client email is required to send",
		})
	}
	if !proposal.CanTransition(models.ProposalSent) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "proposal cannot be sent from status " + proposal.Status,
		})
	}

	link, err := ensureShareLink(models.LinkProposal, proposal.ID, proposal.UserID)
	if err != nil {
		return err
	}
	shareURL := PublicBaseURL() + "/p/" + link.Token

	if deps.Mail != nil {
		html := "<p>You have received a proposal: <a href=\"" + shareURL + "\">" + proposal.Title + "</a></p>"
		text := "You have received a proposal: " + shareURL
		if err := deps.Mail.Send(proposal.ClientEmail, "Proposal: "+proposal.Title, html, text); err != nil {
			return serviceError(c, err)
		}
	}

	now := time.Now()
	updates := map[string]any{"status": models.ProposalSent, "sent_at": &now}
	if err := database.DB.Model(&proposal).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"proposal":  proposal,
		"share_url": shareURL,
	})
}

func ExportProposalPDF(c *fiber.Ctx) error {
	var proposal models.Proposal
	if err := findOwnedProposal(c, &proposal); err != nil {
		return err
	}
	if deps.PDF == nil {
		return serviceError(c, errServiceMissing)
	}
	pdf, err := deps.PDF.Render(proposal.Content, proposal.Title+".pdf")
	if err != nil {
		return serviceError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

// ViewSharedProposal resolves a public share token. Opening the link is
// the recipient action that reports "viewed"; every open bumps the view
// counter.
func ViewSharedProposal(c *fiber.Ctx) error {
	proposal, err := resolveProposalToken(c)
	if err != nil {
		return err
	}

	if proposal.CanTransition(models.ProposalViewed) {
		proposal.Status = models.ProposalViewed
	}
	proposal.ViewCount++
	if err := database.DB.Model(proposal).Updates(map[string]any{
		"status":     proposal.Status,
		"view_count": gorm.Expr("view_count + 1"),
	}).Error; err != nil {
		return err
	}

	return c.JSON(proposal)
}

// AcceptSharedProposal records the recipient's accept decision.
func AcceptSharedProposal(c *fiber.Ctx) error {
	return decideSharedProposal(c, models.ProposalAccepted)
}

// RejectSharedProposal records the recipient's reject decision.
func RejectSharedProposal(c *fiber.Ctx) error {
	return decideSharedProposal(c, models.ProposalRejected)
}

func decideSharedProposal(c *fiber.Ctx, decision string) error {
	proposal, err := resolveProposalToken(c)
	if err != nil {
		return err
	}
	if !proposal.CanTransition(decision) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "proposal cannot be " + decision + " from status " + proposal.Status,
		})
	}
	if err := database.DB.Model(proposal).Update("status", decision).Error; err != nil {
		return err
	}
	return c.JSON(proposal)
}

func resolveProposalToken(c *fiber.Ctx) (*models.Proposal, error) {
	var link models.ShareLink
	err := database.DB.Where("token = ? AND type = ?", c.Params("token"), models.LinkProposal).First(&link).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if link.Expired() {
		return nil, fiber.NewError(fiber.StatusGone, "link expired")
	}

	var proposal models.Proposal
	if err := database.DB.First(&proposal, link.TargetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.ErrNotFound
		}
		return nil, err
	}
	return &proposal, nil
}
