package controllers

import (
	"pitchdesk-backend/database"
	"pitchdesk-backend/middlewares"
	"pitchdesk-backend/models"
	"pitchdesk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type clientDTO struct {
	CompanyName string `json:"company_name" validate:"required"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	Notes       string `json:"notes"`
}

type clientPatchDTO struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Zip         *string `json:"zip"`
	Notes       *string `json:"notes"`
}

func CreateClient(c *fiber.Ctx) error {
	var data clientDTO
	if err := middlewares.BindAndValidate(c, &data); err != nil {
		return err
	}
	utils.NormalizeDTO(&data)

	client := models.Client{
		UserID:      currentUserID(c),
		CompanyName: data.CompanyName,
		ContactName: data.ContactName,
		Email:       data.Email,
		Phone:       data.Phone,
		Address:     data.Address,
		City:        data.City,
		Country:     data.Country,
		Zip:         data.Zip,
		Notes:       data.Notes,
	}

	if err := database.DB.Create(&client).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create client",
			"error":   err.Error(),
		})
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	var clients []models.Client
	database.DB.Where("user_id = ?", currentUserID(c)).Order("company_name").Find(&clients)
	return c.JSON(fiber.Map{
		"clients": clients,
	})
}

func GetClient(c *fiber.Ctx) error {
	var client models.Client
	err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), currentUserID(c)).First(&client).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}
	return c.JSON(client)
}

func UpdateClient(c *fiber.Ctx) error {
	var client models.Client
	err := database.DB.Where("id = ? AND user_id = ?", c.Params("id"), currentUserID(c)).First(&client).Error
	if err == gorm.ErrRecordNotFound {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	var patch clientPatchDTO
	if err := middlewares.BindAndValidate(c, &patch); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&patch)

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return c.JSON(client)
	}

	if err := database.DB.Model(&client).Updates(updates).Error; err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not update client",
			"error":   err.Error(),
		})
	}
	return c.JSON(client)
}
