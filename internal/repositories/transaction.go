package repositories

import (
	"errors"
	"fmt"

	"rezopay/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository persists transactions and their ledger entries.
// The write methods take the caller's unit of work so a transaction row
// and its ledger rows always commit or roll back together.
type TransactionRepository interface {
	CreateTransaction(uow *gorm.DB, txn *models.Transaction) error
	InsertLedgerEntry(uow *gorm.DB, entry *models.CommissionLedger) error
	GetByClientRef(clientRef string) (*models.Transaction, error)
	ListByUser(userID uint, offset, limit int) ([]models.Transaction, int64, error)
	LedgerByTransaction(transactionID uint) ([]models.CommissionLedger, error)
	LedgerByUser(userID uint, offset, limit int) ([]models.CommissionLedger, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) CreateTransaction(uow *gorm.DB, txn *models.Transaction) error {
	if err := uow.Create(txn).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *transactionRepository) InsertLedgerEntry(uow *gorm.DB, entry *models.CommissionLedger) error {
	if err := uow.Create(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *transactionRepository) GetByClientRef(clientRef string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.Where("client_ref = ?", clientRef).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return &txn, nil
}

func (r *transactionRepository) ListByUser(userID uint, offset, limit int) ([]models.Transaction, int64, error) {
	var txns []models.Transaction
	var total int64

	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&txns).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return txns, total, nil
}

func (r *transactionRepository) LedgerByTransaction(transactionID uint) ([]models.CommissionLedger, error) {
	var entries []models.CommissionLedger
	err := r.db.Where("transaction_id = ?", transactionID).Order("id").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, nil
}

func (r *transactionRepository) LedgerByUser(userID uint, offset, limit int) ([]models.CommissionLedger, int64, error) {
	var entries []models.CommissionLedger
	var total int64

	query := r.db.Model(&models.CommissionLedger{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, total, nil
}
