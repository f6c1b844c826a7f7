package handlers

import (
	"errors"

	"rezopay/internal/middleware"
	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/services/scheme"
	"rezopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type SchemeHandler struct {
	schemeService scheme.Service
}

func NewSchemeHandler(schemeService scheme.Service) *SchemeHandler {
	return &SchemeHandler{schemeService: schemeService}
}

// Create adds a new scheme under the caller's scheme, or a new root for
// SUPER_ADMIN
func (h *SchemeHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	var input models.CreateSchemeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.schemeService.Create(actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, scheme.ErrInvalidInput), errors.Is(err, scheme.ErrNoSchemeAssigned):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, scheme.ErrNotAllowed):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, repositories.ErrSchemeNameTaken):
			return utils.Conflict(c, "Scheme name already taken")
		default:
			return utils.InternalError(c, "Failed to create scheme")
		}
	}

	return utils.Created(c, schemeResponse(created))
}

// Get returns one scheme by ID
func (h *SchemeHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid scheme ID")
	}

	s, err := h.schemeService.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchemeNotFound) {
			return utils.NotFound(c, "Scheme not found")
		}
		return utils.InternalError(c, "Failed to fetch scheme")
	}

	return utils.Success(c, schemeResponse(s))
}

// List returns the schemes visible to the caller
func (h *SchemeHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	schemes, err := h.schemeService.List(actor)
	if err != nil {
		return utils.InternalError(c, "Failed to list schemes")
	}

	out := make([]fiber.Map, 0, len(schemes))
	for _, s := range schemes {
		out = append(out, schemeResponse(s))
	}
	return utils.Success(c, fiber.Map{"schemes": out})
}

// Update renames or toggles a scheme
func (h *SchemeHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid scheme ID")
	}

	var input models.UpdateSchemeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	updated, err := h.schemeService.Update(actor, id, &input)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrSchemeNotFound):
			return utils.NotFound(c, "Scheme not found")
		case errors.Is(err, scheme.ErrNotAllowed):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to update scheme")
		}
	}

	return utils.Success(c, schemeResponse(updated))
}

// Delete removes a childless scheme
func (h *SchemeHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid scheme ID")
	}

	if err := h.schemeService.Delete(actor, id); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSchemeNotFound):
			return utils.NotFound(c, "Scheme not found")
		case errors.Is(err, scheme.ErrRootSchemeDelete):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, repositories.ErrSchemeHasChildren):
			return utils.Conflict(c, "Scheme has child schemes")
		default:
			return utils.InternalError(c, "Failed to delete scheme")
		}
	}

	return utils.Success(c, fiber.Map{
		"message": "Scheme deleted",
	})
}

// Services lists the service catalogue transactions can be booked against
func (h *SchemeHandler) Services(c *fiber.Ctx) error {
	services, err := h.schemeService.ListServices()
	if err != nil {
		return utils.InternalError(c, "Failed to list services")
	}

	out := make([]fiber.Map, 0, len(services))
	for _, svc := range services {
		out = append(out, fiber.Map{
			"id":       svc.ID,
			"category": svc.Category,
			"code":     svc.Code,
			"name":     svc.Name,
		})
	}
	return utils.Success(c, fiber.Map{"services": out})
}

func schemeResponse(s *models.Scheme) fiber.Map {
	return fiber.Map{
		"id":               s.ID,
		"name":             s.Name,
		"parent_scheme_id": s.ParentSchemeID,
		"created_by":       s.CreatedBy,
		"is_active":        s.IsActive,
	}
}
