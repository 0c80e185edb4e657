package controllers

import (
	"pitchdesk-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

type emailDTO struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// SendEmail relays a one-off email through the mail collaborator.
func SendEmail(c *fiber.Ctx) error {
	if deps.Mail == nil {
		return serviceError(c, errServiceMissing)
	}

	var data emailDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	if err := deps.Mail.Send(data.To, data.Subject, data.HTML, data.Text); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "sent",
	})
}
