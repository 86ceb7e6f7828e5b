package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/voxflow/voxflow/pkg/catalog"
	"github.com/voxflow/voxflow/pkg/composer"
	"github.com/voxflow/voxflow/pkg/integrations/facebook"
	"github.com/voxflow/voxflow/pkg/persistence"
	"github.com/voxflow/voxflow/pkg/services"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleServiceError provides typed error handling for service layer errors.
func handleServiceError(c fiber.Ctx, err error) error {
	switch {
	case services.IsValidationError(err) ||
		errors.Is(err, catalog.ErrInvalidConfig) ||
		errors.Is(err, catalog.ErrEntryNotFound):
		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("validation_error").
			WithDetail(err.Error())

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case services.IsConflictError(err):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("conflict").
			WithDetail(err.Error())

		return c.Status(fiber.StatusConflict).JSON(problem)

	case persistence.IsWorkflowNotFound(err):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("workflow_not_found").
			WithDetail("workflow not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, composer.ErrNodeNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("node_not_found").
			WithDetail("node not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, composer.ErrEdgeNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("edge_not_found").
			WithDetail("edge not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, composer.ErrWrongNodeKind),
		errors.Is(err, composer.ErrEdgeEndpointMissing),
		errors.Is(err, composer.ErrIndexOutOfRange):
		problem := problems.NewStatusProblem(400).
			WithInstance(c.Path()).
			WithType("invalid_graph_operation").
			WithDetail(err.Error())

		return c.Status(fiber.StatusBadRequest).JSON(problem)

	case errors.Is(err, persistence.ErrUserNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("user_not_found").
			WithDetail("user not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, persistence.ErrUserHasData):
		problem := problems.NewStatusProblem(409).
			WithInstance(c.Path()).
			WithType("user_has_data").
			WithDetail("user still has associated data")

		return c.Status(fiber.StatusConflict).JSON(problem)

	case errors.Is(err, persistence.ErrSettingsNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("settings_not_found").
			WithDetail("whitelabel settings not found")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	case errors.Is(err, persistence.ErrSupportSessionNotFound):
		problem := problems.NewStatusProblem(404).
			WithInstance(c.Path()).
			WithType("support_session_not_found").
			WithDetail("support session not found or already ended")

		return c.Status(fiber.StatusNotFound).JSON(problem)

	default:
		var apiErr *facebook.APIError
		if errors.As(err, &apiErr) {
			problem := problems.NewStatusProblem(502).
				WithInstance(c.Path()).
				WithType("upstream_error").
				WithDetail(apiErr.Message)

			return c.Status(fiber.StatusBadGateway).JSON(problem)
		}

		problem := problems.NewStatusProblem(500).
			WithInstance(c.Path()).
			WithType("internal_error").
			WithError(err)

		return c.Status(fiber.StatusInternalServerError).JSON(problem)
	}
}
