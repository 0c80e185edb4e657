package controllers

import (
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/pricing"

	"github.com/gofiber/fiber/v2"
)

type quoteDTO struct {
	Selection pricing.Selection `json:"selection"`
	AddOns    pricing.AddOns    `json:"add_ons"`
	Term      string            `json:"contract_term" validate:"omitempty,oneof=6 12"`
}

// ComputeQuote runs the quote engine without persisting anything. The
// calculator UI calls this on every input change.
func ComputeQuote(c *fiber.Ctx) error {
	var data quoteDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	if err := middlewares.ValidateStruct(&data.Selection); err != nil {
		return err
	}
	if err := middlewares.ValidateStruct(&data.AddOns); err != nil {
		return err
	}
	if data.Term == "" {
		data.Term = pricing.TermSixMonths
	}

	totals := pricing.ComputeTotals(data.Selection, data.AddOns, data.Term, pricing.Default)
	return c.JSON(pricing.Snapshot{
		Selection: data.Selection,
		AddOns:    data.AddOns,
		Term:      data.Term,
		Totals:    totals,
	})
}

// GetCatalog exposes the static rate card to the calculator UI.
func GetCatalog(c *fiber.Ctx) error {
	return c.JSON(pricing.Default)
}
