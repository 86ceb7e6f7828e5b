package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/voxflow/voxflow/pkg/catalog"
	"github.com/voxflow/voxflow/pkg/variables"
)

// GetCatalog returns the node palette for one context, optionally filtered
// by a search query. Matching an integration name keeps all of its entries;
// otherwise entries are filtered individually.
func (h *APIHandlers) GetCatalog(c fiber.Ctx) error {
	ctx := catalog.Context(c.Query("context", string(catalog.ContextAction)))
	if ctx != catalog.ContextTrigger && ctx != catalog.ContextAction {
		return badRequest(c, "context must be 'trigger' or 'action'")
	}

	query := c.Query("q")

	var categories []catalog.Category
	if query == "" {
		categories = catalog.Browse(ctx)
	} else {
		categories = catalog.Search(ctx, query)
	}

	return c.JSON(fiber.Map{
		"context":    ctx,
		"categories": categories,
	})
}

// ValidateNodeConfig checks a config payload against a catalog entry's schema
// before the config panel lets the user save it.
func (h *APIHandlers) ValidateNodeConfig(c fiber.Ctx) error {
	var req ValidateConfigRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	err := catalog.ValidateConfig(catalog.Context(req.Context), req.IntegrationID, req.EntryID, req.Config)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(fiber.Map{"valid": true})
}

// GetVariables returns the interpolation variable registry, filtered by the
// workflow's trigger type when one is given.
func (h *APIHandlers) GetVariables(c fiber.Ctx) error {
	triggerType := c.Query("trigger_type")

	return c.JSON(fiber.Map{
		"trigger_type": triggerType,
		"categories":   variables.Registry(triggerType),
	})
}
