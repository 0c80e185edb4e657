package controllers

import (
	"time"

	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type linkDTO struct {
	Type      string     `json:"type" validate:"required,oneof=proposal contract"`
	TargetID  uint       `json:"target_id" validate:"required"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ensureShareLink returns the existing non-expiring link for a document or
// creates one. Send actions reuse it so the emailed URL stays stable.
func ensureShareLink(linkType string, targetID uint, userID string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := database.DB.
		Where("type = ? AND target_id = ? AND expires_at IS NULL", linkType, targetID).
		First(&link).Error
	if err == nil {
		return &link, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	link = models.ShareLink{
		Type:     linkType,
		TargetID: targetID,
		UserID:   userID,
	}
	if err := database.DB.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// CreateShareLink mints a token link, optionally expiring.
func CreateShareLink(c *fiber.Ctx) error {
	var data linkDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	userID := currentUserID(c)

	// The target must exist and belong to the caller.
	var err error
	switch data.Type {
	case models.LinkProposal:
		err = database.DB.Select("id").
			Where("id = ? AND user_id = ?", data.TargetID, userID).
			First(&models.Proposal{}).Error
	case models.LinkContract:
		err = database.DB.Select("id").
			Where("id = ? AND user_id = ?", data.TargetID, userID).
			First(&models.Contract{}).Error
	}
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	link := models.ShareLink{
		Type:      data.Type,
		TargetID:  data.TargetID,
		UserID:    userID,
		ExpiresAt: data.ExpiresAt,
	}
	if err := database.DB.Create(&link).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create link",
			"error":   err.Error(),
		})
	}

	prefix := "/p/"
	if data.Type == models.LinkContract {
		prefix = "/c/"
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"token":      link.Token,
		"url":        PublicBaseURL() + prefix + link.Token,
		"expires_at": link.ExpiresAt,
	})
}
