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

type CommissionHandler struct {
	schemeService scheme.Service
}

func NewCommissionHandler(schemeService scheme.Service) *CommissionHandler {
	return &CommissionHandler{schemeService: schemeService}
}

// Setup creates or updates the commission cap record for a scheme and
// service pair
func (h *CommissionHandler) Setup(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	var input models.CommissionSetupInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	record, err := h.schemeService.SetCommission(actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, scheme.ErrInvalidInput):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, scheme.ErrNotAllowed),
			errors.Is(err, scheme.ErrSeniorRole),
			errors.Is(err, scheme.ErrExceedsParentLimit):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, repositories.ErrSchemeNotFound):
			return utils.NotFound(c, "Scheme not found")
		case errors.Is(err, repositories.ErrServiceNotFound):
			return utils.NotFound(c, "Service not found")
		default:
			return utils.InternalError(c, "Failed to set commission")
		}
	}

	return utils.Success(c, commissionResponse(record))
}

// ListForScheme returns all cap records a scheme configures
func (h *CommissionHandler) ListForScheme(c *fiber.Ctx) error {
	schemeID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid scheme ID")
	}

	records, err := h.schemeService.ListCommissions(schemeID)
	if err != nil {
		return utils.InternalError(c, "Failed to list commissions")
	}

	out := make([]fiber.Map, 0, len(records))
	for _, record := range records {
		out = append(out, commissionResponse(record))
	}
	return utils.Success(c, fiber.Map{"commissions": out})
}

func commissionResponse(record *models.SchemeCommission) fiber.Map {
	return fiber.Map{
		"scheme_id":          record.SchemeID,
		"service_id":         record.ServiceID,
		"commission_kind":    record.Kind,
		"admin":              record.Admin,
		"white_label":        record.WhiteLabel,
		"master_distributor": record.MasterDistributor,
		"distributor":        record.Distributor,
		"retailer":           record.Retailer,
		"customer":           record.Customer,
		"set_by_user_id":     record.SetByUserID,
	}
}
