package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/slaviors/simenu/services"
)

// MaxUploadSize bounds menu image uploads.
const MaxUploadSize = 10 * 1024 * 1024 // 10MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MenuItemForm defines the expected multipart structure for menu upserts.
type MenuItemForm struct {
	Name        string  `form:"name" validate:"required"`
	Description string  `form:"description"`
	Price       float64 `form:"price" validate:"gte=0"`
	Category    string  `form:"category" validate:"required"`
}

// RequestValidator handles menu form validation.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new RequestValidator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParseMenuItemForm validates a menu upsert form and its optional image file.
func (rv *RequestValidator) ParseMenuItemForm(c *gin.Context) (*services.MenuUpsertRequest, error) {
	var form MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		return nil, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	req := &services.MenuUpsertRequest{
		Name:        strings.TrimSpace(form.Name),
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
	}

	if image, err := c.FormFile("image"); err == nil && image != nil {
		if image.Size > MaxUploadSize {
			return nil, fmt.Errorf("image too large (max %dMB)", MaxUploadSize/(1024*1024))
		}
		if !rv.isValidImageType(image) {
			return nil, errors.New("invalid image type, allowed: jpeg, jpg, png, webp, gif")
		}
		req.Image = image
	}

	return req, nil
}

func (rv *RequestValidator) isValidImageType(file *multipart.FileHeader) bool {
	if allowedImageTypes[file.Header.Get("Content-Type")] {
		return true
	}

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}
