package controllers

import (
	"time"

	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"
	"pitchdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type lineItemDTO struct {
	Description string  `json:"description" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"min=0"`
}

type invoiceDTO struct {
	InvoiceNumber   string        `json:"invoice_number" validate:"required"`
	ClientName      string        `json:"client_name"`
	ClientCompany   string        `json:"client_company"`
	ClientEmail     string        `json:"client_email" validate:"omitempty,email"`
	Items           []lineItemDTO `json:"line_items" validate:"required,min=1"`
	TaxRate         float64       `json:"tax_rate" validate:"min=0"`
	MilestoneNumber int           `json:"milestone_number" validate:"min=0"`
	MilestoneTotal  int           `json:"milestone_total" validate:"min=0"`
	PaymentPlatform string        `json:"payment_platform"`
	PaymentLink     string        `json:"payment_link"`
}

type invoiceStatusDTO struct {
	Status string `json:"status" validate:"required,oneof=sent viewed paid overdue cancelled"`
}

func findOwnedInvoice(c *fiber.Ctx, invoice *models.Invoice) error {
	err := database.DB.Preload("Items").
		Where("id = ? AND user_id = ?", c.Params("id"), currentUserID(c)).
		First(invoice).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	return err
}

func itemsFromDTO(items []lineItemDTO) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		out[i] = models.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   utils.Round2(item.UnitPrice),
		}
	}
	return out
}

func CreateInvoice(c *fiber.Ctx) error {
	var data invoiceDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	for i := range data.Items {
		if err := middlewares.ValidateStruct(&data.Items[i]); err != nil {
			return err
		}
	}

	invoice := models.Invoice{
		UserID:          currentUserID(c),
		InvoiceNumber:   data.InvoiceNumber,
		Status:          models.InvoiceDraft,
		ClientName:      data.ClientName,
		ClientCompany:   data.ClientCompany,
		ClientEmail:     data.ClientEmail,
		Items:           itemsFromDTO(data.Items),
		TaxRate:         data.TaxRate,
		MilestoneNumber: data.MilestoneNumber,
		MilestoneTotal:  data.MilestoneTotal,
		PaymentPlatform: data.PaymentPlatform,
		PaymentLink:     data.PaymentLink,
	}
	invoice.Recalculate()

	if err := database.DB.Create(&invoice).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create invoice",
			"error":   err.Error(),
		})
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(invoice)
}

func GetInvoices(c *fiber.Ctx) error {
	var invoices []models.Invoice
	database.DB.Preload("Items").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at DESC").
		Find(&invoices)
	return c.JSON(fiber.Map{
		"invoices": invoices,
	})
}

func GetInvoice(c *fiber.Ctx) error {
	var invoice models.Invoice
	if err := findOwnedInvoice(c, &invoice); err != nil {
		return err
	}
	return c.JSON(invoice)
}

// UpdateInvoice replaces the invoice's editable fields and line items.
// Totals are recomputed from the incoming items, never carried over.
func UpdateInvoice(c *fiber.Ctx) error {
	var invoice models.Invoice
	if err := findOwnedInvoice(c, &invoice); err != nil {
		return err
	}
	if invoice.Status != models.InvoiceDraft {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "invoice can only be edited in draft",
		})
	}

	var data invoiceDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	for i := range data.Items {
		if err := middlewares.ValidateStruct(&data.Items[i]); err != nil {
			return err
		}
	}

	invoice.InvoiceNumber = data.InvoiceNumber
	invoice.ClientName = data.ClientName
	invoice.ClientCompany = data.ClientCompany
	invoice.ClientEmail = data.ClientEmail
	invoice.TaxRate = data.TaxRate
	invoice.MilestoneNumber = data.MilestoneNumber
	invoice.MilestoneTotal = data.MilestoneTotal
	invoice.PaymentPlatform = data.PaymentPlatform
	invoice.PaymentLink = data.PaymentLink
	invoice.Items = itemsFromDTO(data.Items)
	invoice.Recalculate()

	tx := database.DB.Begin()
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&models.LineItem{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not update invoice",
			"error":   err.Error(),
		})
	}
	tx.Commit()

	return c.JSON(invoice)
}

// SendInvoice emails the invoice and moves it to sent.
func SendInvoice(c *fiber.Ctx) error {
	var invoice models.Invoice
	if err := findOwnedInvoice(c, &invoice); err != nil {
		return err
	}
	if invoice.ClientEmail == "" {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "client email is required to send",
		})
	}
	if !invoice.CanTransition(models.InvoiceSent) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "invoice cannot be sent from status " + invoice.Status,
		})
	}

	if deps.Mail != nil {
		link := invoice.PaymentLink
		html := "<p>Invoice " + invoice.InvoiceNumber + " is ready.</p>"
		text := "Invoice " + invoice.InvoiceNumber + " is ready."
		if link != "" {
			html += "<p><a href=\"" + link + "\">Pay now</a></p>"
			text += " Pay: " + link
		}
		if err := deps.Mail.Send(invoice.ClientEmail, "Invoice "+invoice.InvoiceNumber, html, text); err != nil {
			return serviceError(c, err)
		}
	}

	now := time.Now()
	if err := database.DB.Model(&invoice).Updates(map[string]any{
		"status":  models.InvoiceSent,
		"sent_at": &now,
	}).Error; err != nil {
		return err
	}
	return c.JSON(invoice)
}

// UpdateInvoiceStatus handles the explicit transitions (markPaid,
// markOverdue, cancel and collaborator-reported viewed).
func UpdateInvoiceStatus(c *fiber.Ctx) error {
	var invoice models.Invoice
	if err := findOwnedInvoice(c, &invoice); err != nil {
		return err
	}

	var data invoiceStatusDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}

	if !invoice.CanTransition(data.Status) {
		c.Status(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"message": "invoice cannot move from " + invoice.Status + " to " + data.Status,
		})
	}

	if err := database.DB.Model(&invoice).Update("status", data.Status).Error; err != nil {
		return err
	}
	return c.JSON(invoice)
}
