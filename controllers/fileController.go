package controllers

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadFile stores a multipart upload and returns its public URL.
func UploadFile(c *fiber.Ctx) error {
	if deps.Store == nil {
		return serviceError(c, errServiceMissing)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "file is required",
		})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectName := "uploads/" + uuid.NewString() + filepath.Ext(fileHeader.Filename)

	url, err := deps.Store.Upload(c.Context(), objectName, src, fileHeader.Size, contentType)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
