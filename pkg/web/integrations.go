package web

import (
	"github.com/gofiber/fiber/v3"
)

// facebookConfigured guards the Graph API routes when no app credentials
// were provided at startup.
func (h *APIHandlers) facebookConfigured(c fiber.Ctx) (bool, error) {
	if h.facebookClient == nil {
		return false, c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Facebook integration is not configured",
		})
	}

	return true, nil
}

// GetFacebookPages lists the pages the connected Facebook account manages.
func (h *APIHandlers) GetFacebookPages(c fiber.Ctx) error {
	if ok, resp := h.facebookConfigured(c); !ok {
		return resp
	}

	pages, err := h.facebookClient.Pages(c.Context())
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"pages": pages})
}

// GetFacebookLeadForms lists the lead forms on one page.
func (h *APIHandlers) GetFacebookLeadForms(c fiber.Ctx) error {
	if ok, resp := h.facebookConfigured(c); !ok {
		return resp
	}

	pageID := c.Params("pageId")
	if pageID == "" {
		return badRequest(c, "Page ID is required")
	}

	forms, err := h.facebookClient.LeadForms(c.Context(), pageID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"forms": forms})
}

// SubscribeFacebookPage registers the app for leadgen webhooks on one page.
func (h *APIHandlers) SubscribeFacebookPage(c fiber.Ctx) error {
	if ok, resp := h.facebookConfigured(c); !ok {
		return resp
	}

	pageID := c.Params("pageId")
	if pageID == "" {
		return badRequest(c, "Page ID is required")
	}

	err := h.facebookClient.Subscribe(c.Context(), pageID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Page subscribed"})
}

// SendFacebookTestLead asks Facebook to emit a synthetic lead so the trigger
// can be verified before going live.
func (h *APIHandlers) SendFacebookTestLead(c fiber.Ctx) error {
	if ok, resp := h.facebookConfigured(c); !ok {
		return resp
	}

	var req TestLeadRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := h.facebookClient.SendTestLead(c.Context(), req.PageID, req.FormID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Test lead sent"})
}
