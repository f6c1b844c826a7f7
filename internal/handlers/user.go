package handlers

import (
	"errors"
	"strconv"

	"rezopay/internal/middleware"
	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/services/user"
	"rezopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// Onboard creates a new subordinate under the authenticated user
func (h *UserHandler) Onboard(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	var input models.OnboardUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	created, err := h.userService.Onboard(actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidInput):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, user.ErrRoleNotOnboardable), errors.Is(err, user.ErrSuperAdminExists):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, repositories.ErrEmailTaken):
			return utils.Conflict(c, "Email already registered")
		case errors.Is(err, repositories.ErrSchemeNotFound):
			return utils.BadRequest(c, "Scheme does not exist")
		default:
			return utils.InternalError(c, "Failed to create user")
		}
	}

	return utils.Created(c, userResponse(created))
}

// Me returns the authenticated user's profile
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}
	return utils.Success(c, userResponse(actor))
}

// SetStatus activates or deactivates a subordinate
func (h *UserHandler) SetStatus(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input struct {
		IsActive *bool `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil || input.IsActive == nil {
		return utils.BadRequest(c, "is_active is required")
	}

	updated, err := h.userService.SetActive(actor, targetID, *input.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, user.ErrNotAuthorized):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to update user")
		}
	}

	return utils.Success(c, userResponse(updated))
}

// Delete removes a subordinate
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := h.userService.Delete(actor, targetID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return utils.NotFound(c, "User not found")
		case errors.Is(err, user.ErrNotAuthorized):
			return utils.Forbidden(c, err.Error())
		default:
			return utils.InternalError(c, "Failed to delete user")
		}
	}

	return utils.Success(c, fiber.Map{
		"message": "User deleted",
	})
}

// ListSubordinates lists users created by the authenticated user
func (h *UserHandler) ListSubordinates(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	users, total, err := h.userService.ListSubordinates(actor.ID, page, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list users")
	}

	out := make([]fiber.Map, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse(u))
	}

	return utils.Success(c, fiber.Map{
		"users": out,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func userResponse(u *models.User) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"parent_id": u.ParentID,
		"scheme_id": u.SchemeID,
		"is_active": u.IsActive,
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	return uint(id), err
}
