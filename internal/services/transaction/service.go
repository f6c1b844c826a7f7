// Package transaction implements transaction intake. Creating a
// transaction and settling its commission happen in one unit of work, so
// a failed settlement never leaves a half-booked transaction behind.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"rezopay/internal/models"
	"rezopay/internal/repositories"
	"rezopay/internal/services/commission"
	"rezopay/internal/validation"

	"github.com/jaevor/go-nanoid"
	"gorm.io/gorm"
)

var (
	ErrRoleCannotTransact = errors.New("role cannot initiate transactions")
	ErrNoSchemeAssigned   = errors.New("user is not assigned to any scheme")
	ErrDuplicateClientRef = errors.New("client reference already used")
	ErrInvalidInput       = errors.New("invalid input")
)

// Result bundles the booked transaction with the commission entries its
// settlement produced.
type Result struct {
	Transaction *models.Transaction       `json:"transaction"`
	Ledger      []models.CommissionLedger `json:"ledger"`
}

type Service interface {
	Create(ctx context.Context, actor *models.User, input *models.CreateTransactionInput) (*Result, error)
	History(userID uint, page, limit int) ([]models.Transaction, int64, error)
	Ledger(transactionID uint) ([]models.CommissionLedger, error)
	Earnings(userID uint, page, limit int) ([]models.CommissionLedger, int64, error)
}

type service struct {
	db           *gorm.DB
	transactions repositories.TransactionRepository
	schemes      repositories.SchemeRepository
	engine       *commission.Engine
	newReference func() string
}

func NewService(db *gorm.DB, transactions repositories.TransactionRepository, schemes repositories.SchemeRepository, engine *commission.Engine) Service {
	if db == nil {
		panic("db is required")
	}
	if engine == nil {
		panic("commission engine is required")
	}

	gen, err := nanoid.Standard(15)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize reference generator: %v", err))
	}

	return &service{
		db:           db,
		transactions: transactions,
		schemes:      schemes,
		engine:       engine,
		newReference: gen,
	}
}

func (s *service) Create(ctx context.Context, actor *models.User, input *models.CreateTransactionInput) (*Result, error) {
	v := validation.New()
	v.Check(input.ServiceID != 0, "service_id", "must not be zero")
	v.Range("amount", input.Amount, validation.MinTransactionAmount, validation.MaxTransactionAmount)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, v.Error())
	}

	if !actor.Role.CanInitiateTransaction() {
		return nil, fmt.Errorf("%w: %s", ErrRoleCannotTransact, actor.Role)
	}
	if actor.SchemeID == nil {
		return nil, ErrNoSchemeAssigned
	}

	if _, err := s.schemes.GetService(input.ServiceID); err != nil {
		return nil, err
	}

	// Settlement is not idempotent, so callers retrying a request must
	// pass a client_ref. A repeat with the same ref returns the original
	// booking instead of settling twice.
	var clientRef *string
	if input.ClientRef != "" {
		existing, err := s.transactions.GetByClientRef(input.ClientRef)
		if err == nil {
			ledger, lerr := s.transactions.LedgerByTransaction(existing.ID)
			if lerr != nil {
				return nil, lerr
			}
			return &Result{Transaction: existing, Ledger: ledger}, nil
		}
		if !errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, err
		}
		clientRef = &input.ClientRef
	}

	txn := &models.Transaction{
		Reference: "TXN-" + s.newReference(),
		ClientRef: clientRef,
		UserID:    actor.ID,
		SchemeID:  *actor.SchemeID,
		ServiceID: input.ServiceID,
		Amount:    input.Amount,
		Status:    models.TransactionStatusCompleted,
	}

	var ledger []models.CommissionLedger
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.transactions.CreateTransaction(tx, txn); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateClientRef
			}
			return err
		}

		entries, err := s.engine.Settle(tx, txn)
		if err != nil {
			return err
		}
		ledger = entries
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Result{Transaction: txn, Ledger: ledger}, nil
}

func (s *service) History(userID uint, page, limit int) ([]models.Transaction, int64, error) {
	offset, limit := pageBounds(page, limit)
	return s.transactions.ListByUser(userID, offset, limit)
}

func (s *service) Ledger(transactionID uint) ([]models.CommissionLedger, error) {
	return s.transactions.LedgerByTransaction(transactionID)
}

func (s *service) Earnings(userID uint, page, limit int) ([]models.CommissionLedger, int64, error) {
	offset, limit := pageBounds(page, limit)
	return s.transactions.LedgerByUser(userID, offset, limit)
}

func pageBounds(page, limit int) (offset, bounded int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > validation.MaxPageSize {
		limit = validation.MaxPageSize
	}
	return (page - 1) * limit, limit
}
