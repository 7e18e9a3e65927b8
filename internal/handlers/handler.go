package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"kursus/internal/apperrors"
	"kursus/internal/services"
)

// respondError converts a service error into a response with the status the
// error taxonomy assigns it.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(apperrors.StatusCode(err)).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// respondValidationErrors renders validator failures as a field → message map.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// formUpload reads an optional multipart file into memory. A missing field
// returns (nil, nil); callers enforce which uploads are mandatory.
func formUpload(c *fiber.Ctx, field string) (*services.Upload, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(fileHeader)
}

func readUpload(fileHeader *multipart.FileHeader) (*services.Upload, error) {
	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", fileHeader.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", fileHeader.Filename, err)
	}
	return &services.Upload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
