package controllers

import (
	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type commentDTO struct {
	AuthorName      string `json:"author_name" validate:"required"`
	Content         string `json:"content" validate:"required"`
	HighlightedText string `json:"highlighted_text"`
	BlockID         string `json:"block_id"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// commentTarget abstracts over the two commentable document types.
type commentTarget struct {
	column     string // comments FK column
	docTable   string // parent table carrying comment_count
	documentID uint
}

func proposalCommentTarget(c *fiber.Ctx) (*commentTarget, error) {
	var proposal models.Proposal
	err := database.DB.Select("id").Where("id = ?", c.Params("id")).First(&proposal).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &commentTarget{column: "proposal_id", docTable: "proposals", documentID: proposal.ID}, nil
}

func contractCommentTarget(c *fiber.Ctx) (*commentTarget, error) {
	var contract models.Contract
	err := database.DB.Select("id").Where("id = ?", c.Params("id")).First(&contract).Error
	if err == gorm.ErrRecordNotFound {
		return nil, fiber.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &commentTarget{column: "contract_id", docTable: "contracts", documentID: contract.ID}, nil
}

func listComments(c *fiber.Ctx, target *commentTarget) error {
	var flat []models.Comment
	if err := database.DB.
		Where(target.column+" = ?", target.documentID).
		Order("created_at, id").
		Find(&flat).Error; err != nil {
		return err
	}

	// Block filtering happens before threading, so replies whose parent is
	// on another block surface as roots.
	if blockID := c.Query("block_id"); blockID != "" {
		flat = models.FilterByBlock(flat, blockID)
	}

	roots := models.OrganizeComments(flat)
	if roots == nil {
		roots = []*models.Comment{}
	}
	return c.JSON(fiber.Map{
		"comments": roots,
	})
}

func createComment(c *fiber.Ctx, target *commentTarget) error {
	var data commentDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	if data.ParentCommentID != nil {
		var parent models.Comment
		err := database.DB.
			Where("id = ? AND "+target.column+" = ?", *data.ParentCommentID, target.documentID).
			First(&parent).Error
		if err == gorm.ErrRecordNotFound {
			c.Status(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"message": "parent comment not found on this document",
			})
		}
		if err != nil {
			return err
		}
	}

	comment := models.Comment{
		AuthorName:      data.AuthorName,
		Content:         data.Content,
		HighlightedText: data.HighlightedText,
		BlockID:         data.BlockID,
		ParentCommentID: data.ParentCommentID,
	}
	if target.column == "proposal_id" {
		comment.ProposalID = &target.documentID
	} else {
		comment.ContractID = &target.documentID
	}

	tx := database.DB.Begin()
	if err := tx.Create(&comment).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create comment",
			"error":   err.Error(),
		})
	}
	if err := tx.Table(target.docTable).
		Where("id = ?", target.documentID).
		Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
		tx.Rollback()
		return err
	}
	tx.Commit()

	c.Status(fiber.StatusCreated)
	return c.JSON(comment)
}

// resolveComment toggles is_resolved. Resolution is a root-only action;
// replies do not carry independent resolution.
func resolveComment(c *fiber.Ctx, target *commentTarget) error {
	var comment models.Comment
	err := database.DB.
		Where("id = ? AND "+target.column+" = ?", c.Params("cid"), target.documentID).
		First(&comment).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	if comment.ParentCommentID != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "only root comments can be resolved",
		})
	}

	if err := database.DB.Model(&comment).Update("is_resolved", !comment.IsResolved).Error; err != nil {
		return err
	}
	comment.IsResolved = !comment.IsResolved
	return c.JSON(comment)
}

func ListProposalComments(c *fiber.Ctx) error {
	target, err := proposalCommentTarget(c)
	if err != nil {
		return err
	}
	return listComments(c, target)
}

func CreateProposalComment(c *fiber.Ctx) error {
	target, err := proposalCommentTarget(c)
	if err != nil {
		return err
	}
	return createComment(c, target)
}

func ResolveProposalComment(c *fiber.Ctx) error {
	target, err := proposalCommentTarget(c)
	if err != nil {
		return err
	}
	return resolveComment(c, target)
}

func ListContractComments(c *fiber.Ctx) error {
	target, err := contractCommentTarget(c)
	if err != nil {
		return err
	}
	return listComments(c, target)
}

func CreateContractComment(c *fiber.Ctx) error {
	target, err := contractCommentTarget(c)
	if err != nil {
		return err
	}
	return createComment(c, target)
}

func ResolveContractComment(c *fiber.Ctx) error {
	target, err := contractCommentTarget(c)
	if err != nil {
		return err
	}
	return resolveComment(c, target)
}
