package controllers

import (
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type trackDownloadDTO struct {
	DownloadLocation string `json:"download_location" validate:"required,url"`
}

// SearchImages proxies cover-photo search to the third-party photo API.
// Failures degrade the picker, never the surrounding editor.
func SearchImages(c *fiber.Ctx) error {
	if deps.Photos == nil {
		return serviceError(c, errServiceMissing)
	}

	query := c.Query("query")
	if query == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "query is required",
		})
	}
	page := utils.ParseIntDefault(c.Query("page"), 1)
	perPage := utils.ParseIntDefault(c.Query("per_page"), 12)

	result, err := deps.Photos.Search(query, page, perPage)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// TrackImageDownload fires the provider's attribution ping for a photo
// that was actually used. Best-effort per the provider's policy.
func TrackImageDownload(c *fiber.Ctx) error {
	if deps.Photos == nil {
		return serviceError(c, errServiceMissing)
	}

	var data trackDownloadDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	deps.Photos.TriggerDownload(data.DownloadLocation)
	return c.SendStatus(fiber.StatusAccepted)
}
