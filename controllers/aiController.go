package controllers

import (
	"encoding/json"

	"pitchdesk-backend/middlewares"

	"github.com/gofiber/fiber/v2"
)

type enhanceDTO struct {
	Prompt string `json:"prompt" validate:"required"`
}

type aiProposalDTO struct {
	CalculatorData json.RawMessage `json:"calculator_data" validate:"required"`
}

// EnhanceContent asks the LLM collaborator for a rewrite suggestion.
func EnhanceContent(c *fiber.Ctx) error {
	if deps.AI == nil {
		return serviceError(c, errServiceMissing)
	}

	var data enhanceDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	enhanced, err := deps.AI.Enhance(data.Prompt)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"enhancedContent": enhanced,
	})
}

// GenerateProposalContent drafts a proposal body from a calculator
// snapshot.
func GenerateProposalContent(c *fiber.Ctx) error {
	if deps.AI == nil {
		return serviceError(c, errServiceMissing)
	}

	var data aiProposalDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	content, err := deps.AI.GenerateProposal(data.CalculatorData)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"content": content,
	})
}
