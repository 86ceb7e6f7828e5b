package web

import (
	"github.com/gofiber/fiber/v3"
)

// GetConversations returns the per-contact conversation rollup for the
// calling account.
func (h *APIHandlers) GetConversations(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	list, err := h.conversationsService.List(c.Context(), account)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"conversations": list,
		"total":         len(list),
	})
}

// GetConversation returns the history with one phone number.
func (h *APIHandlers) GetConversation(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	phone := c.Params("phone")
	if phone == "" {
		return badRequest(c, "Phone number is required")
	}

	conversation, err := h.conversationsService.Get(c.Context(), account, phone)
	if err != nil {
		return handleServiceError(c, err)
	}

	if conversation == nil {
		return notFound(c, "No history with this phone number")
	}

	return c.JSON(conversation)
}

// GetUsers lists the account's users.
func (h *APIHandlers) GetUsers(c fiber.Ctx) error {
	account := accountID(c)
	if account == "" {
		return badRequest(c, "Account ID is required")
	}

	users, err := h.adminService.ListUsers(c.Context(), account)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"users": users})
}

// DeleteUser tears down a user and everything they own.
func (h *APIHandlers) DeleteUser(c fiber.Ctx) error {
	id := c.Params("userId")
	if id == "" {
		return badRequest(c, "User ID is required")
	}

	result, err := h.adminService.DeleteUser(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(result)
}

// EndSupportSession revokes a temporary support-access grant.
func (h *APIHandlers) EndSupportSession(c fiber.Ctx) error {
	id := c.Params("sessionId")
	if id == "" {
		return badRequest(c, "Support session ID is required")
	}

	err := h.persistence.SupportSessionRepository().End(c.Context(), id)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Support session ended"})
}
