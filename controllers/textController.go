package controllers

import (
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/textscan"

	"github.com/gofiber/fiber/v2"
)

type scanDTO struct {
	Text string `json:"text" validate:"required"`
}

// ScanText runs the text-quality scanner over arbitrary text.
func ScanText(c *fiber.Ctx) error {
	var data scanDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	issues := textscan.Scan(data.Text)
	if issues == nil {
		issues = []textscan.Issue{}
	}
	return c.JSON(fiber.Map{
		"issues": issues,
	})
}
