package web

import (
	"github.com/gofiber/fiber/v3"

	"github.com/voxflow/voxflow/pkg/catalog"
	"github.com/voxflow/voxflow/pkg/composer"
	"github.com/voxflow/voxflow/pkg/models"
	"github.com/voxflow/voxflow/pkg/services"
)

// publishCommand mirrors a graph edit onto the command bus so listeners can
// follow editing activity. Publish failures never fail the request.
func (h *APIHandlers) publishCommand(cmdType composer.CommandType, workflowID, nodeID string) {
	if h.commandBus == nil {
		return
	}

	_ = h.commandBus.Publish(composer.Command{
		Type:       cmdType,
		WorkflowID: workflowID,
		NodeID:     nodeID,
	})
}

func (h *APIHandlers) CreateNode(c fiber.Ctx) error {
	workflowID := c.Params("id")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req CreateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	node, err := h.nodeService.CreateNode(c.Context(), workflowID, &services.CreateNodeRequest{
		Context:       catalog.Context(req.Context),
		IntegrationID: req.IntegrationID,
		EntryID:       req.EntryID,
		SourceNodeID:  req.SourceNodeID,
		SourceHandle:  req.SourceHandle,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(node)
}

func (h *APIHandlers) UpdateNode(c fiber.Ctx) error {
	workflowID := c.Params("id")
	nodeID := c.Params("nodeId")

	if workflowID == "" || nodeID == "" {
		return badRequest(c, "Workflow ID and node ID are required")
	}

	var req UpdateNodeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if len(req.Data) == 0 {
		return badRequest(c, "Node data patch is required")
	}

	node, err := h.nodeService.UpdateNode(c.Context(), workflowID, nodeID, req.Data)
	if err != nil {
		return handleServiceError(c, err)
	}

	h.publishCommand(composer.CommandEditNode, workflowID, nodeID)

	return c.JSON(node)
}

func (h *APIHandlers) DeleteNode(c fiber.Ctx) error {
	workflowID := c.Params("id")
	nodeID := c.Params("nodeId")

	if workflowID == "" || nodeID == "" {
		return badRequest(c, "Workflow ID and node ID are required")
	}

	err := h.nodeService.DeleteNode(c.Context(), workflowID, nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	h.publishCommand(composer.CommandDeleteNode, workflowID, nodeID)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *APIHandlers) DuplicateNode(c fiber.Ctx) error {
	workflowID := c.Params("id")
	nodeID := c.Params("nodeId")

	if workflowID == "" || nodeID == "" {
		return badRequest(c, "Workflow ID and node ID are required")
	}

	clone, err := h.nodeService.DuplicateNode(c.Context(), workflowID, nodeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	h.publishCommand(composer.CommandDuplicateNode, workflowID, clone.ID)

	return c.Status(fiber.StatusCreated).JSON(clone)
}

func (h *APIHandlers) CreateEdge(c fiber.Ctx) error {
	workflowID := c.Params("id")
	if workflowID == "" {
		return badRequest(c, "Workflow ID is required")
	}

	var req CreateEdgeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "Invalid JSON format")
	}

	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, err.Error())
	}

	edge, err := h.nodeService.CreateEdge(c.Context(), workflowID, &services.CreateEdgeRequest{
		Source:          req.Source,
		Target:          req.Target,
		SourceHandle:    req.SourceHandle,
		Condition:       models.EdgeCondition(req.Condition),
		CustomCondition: req.CustomCondition,
	})
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(edge)
}

func (h *APIHandlers) DeleteEdge(c fiber.Ctx) error {
	workflowID := c.Params("id")
	edgeID := c.Params("edgeId")

	if workflowID == "" || edgeID == "" {
		return badRequest(c, "Workflow ID and edge ID are required")
	}

	err := h.nodeService.DeleteEdge(c.Context(), workflowID, edgeID)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
