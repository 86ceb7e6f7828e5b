package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/voxflow/voxflow/pkg/services"
)

// GetSettings returns the account's whitelabel settings.
func (h *APIHandlers) GetSettings(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	settings, err := h.whitelabelService.Get(c.Context(), account)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(settings)
}

// UpdateSettings saves branding changes.
func (h *APIHandlers) UpdateSettings(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	var req UpdateSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	settings, err := h.whitelabelService.Update(c.Context(), account, services.UpdateSettingsRequest{
		BrandName:    req.BrandName,
		Slug:         req.Slug,
		LogoURL:      req.LogoURL,
		SupportEmail: req.SupportEmail,
		CustomDomain: req.CustomDomain,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(settings)
}

// ActivateSettings publishes or unpublishes the branded site.
func (h *APIHandlers) ActivateSettings(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	var req ActivateSettingsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	settings, err := h.whitelabelService.Activate(c.Context(), account, req.Active)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(settings)
}

// CheckSlug reports whether a slug is free for this account.
func (h *APIHandlers) CheckSlug(c fiber.Ctx) error {
	account := accountID(c)
	slug := c.Query("slug")

	if slug == "" {
		return badRequest(c, "Slug is required")
	}

	available, err := h.whitelabelService.SlugAvailable(c.Context(), slug, account)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"slug":      slug,
		"available": available,
	})
}

// GetConnections lists the account's stored OAuth connections, optionally
// filtered by provider.
func (h *APIHandlers) GetConnections(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	connections, err := h.persistence.ConnectionRepository().List(c.Context(), account, c.Query("provider"))
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"connections": connections})
}
