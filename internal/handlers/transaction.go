package handlers

import (
	"errors"

	"rezopay/internal/middleware"
	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/services/transaction"
	"rezopay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	txnService transaction.Service
}

func NewTransactionHandler(txnService transaction.Service) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// Create books a transaction and settles commission in one unit of work
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	var input models.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.txnService.Create(c.Context(), actor, &input)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrInvalidInput), errors.Is(err, transaction.ErrNoSchemeAssigned):
			return utils.BadRequest(c, err.Error())
		case errors.Is(err, transaction.ErrRoleCannotTransact):
			return utils.Forbidden(c, err.Error())
		case errors.Is(err, repositories.ErrServiceNotFound):
			return utils.NotFound(c, "Service not found")
		case errors.Is(err, transaction.ErrDuplicateClientRef):
			return utils.Conflict(c, "Client reference already used")
		default:
			return utils.InternalError(c, "Failed to create transaction")
		}
	}

	return utils.Created(c, fiber.Map{
		"transaction": transactionResponse(result.Transaction),
		"ledger":      result.Ledger,
	})
}

// History lists the authenticated user's transactions
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	txns, total, err := h.txnService.History(actor.ID, page, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to list transactions")
	}

	out := make([]fiber.Map, 0, len(txns))
	for i := range txns {
		out = append(out, transactionResponse(&txns[i]))
	}
	return utils.Success(c, fiber.Map{
		"transactions": out,
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Ledger returns the commission entries one transaction produced
func (h *TransactionHandler) Ledger(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.BadRequest(c, "Invalid transaction ID")
	}

	entries, err := h.txnService.Ledger(id)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch ledger")
	}
	return utils.Success(c, fiber.Map{"ledger": entries})
}

// Earnings lists the authenticated user's commission entries
func (h *TransactionHandler) Earnings(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return utils.Unauthorized(c, "Authentication required")
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)

	entries, total, err := h.txnService.Earnings(actor.ID, page, limit)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch earnings")
	}
	return utils.Success(c, fiber.Map{
		"earnings": entries,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func transactionResponse(txn *models.Transaction) fiber.Map {
	return fiber.Map{
		"id":         txn.ID,
		"reference":  txn.Reference,
		"client_ref": txn.ClientRef,
		"user_id":    txn.UserID,
		"scheme_id":  txn.SchemeID,
		"service_id": txn.ServiceID,
		"amount":     txn.Amount,
		"status":     txn.Status,
		"created_at": txn.CreatedAt,
	}
}
