package commission

import (
	"errors"
	"fmt"
	"math"
	"time"

	"rezopay/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Engine settles commission for completed transactions.
type Engine struct {
	resolver *Resolver
	users    UserDirectory
	ledger   LedgerWriter
	metrics  MetricsCollector
}

func NewEngine(resolver *Resolver, users UserDirectory, ledger LedgerWriter, metrics MetricsCollector) *Engine {
	if resolver == nil {
		panic("resolver is required")
	}
	if users == nil {
		panic("user directory is required")
	}
	if ledger == nil {
		panic("ledger writer is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &Engine{
		resolver: resolver,
		users:    users,
		ledger:   ledger,
		metrics:  metrics,
	}
}

// Settle resolves margins for txn and writes one ledger entry per user in
// the initiating user's ownership chain whose role carries a positive
// margin. It must be invoked exactly once per transaction, inside the same
// unit of work that created the transaction row; on any error the caller
// is expected to roll back the whole unit of work.
//
// When no ancestor scheme configures commission for the service, Settle
// returns no entries and no error: the transaction stands with zero
// commission distributed.
func (e *Engine) Settle(uow *gorm.DB, txn *models.Transaction) ([]models.CommissionLedger, error) {
	start := time.Now()

	initiator, err := e.users.UserByID(txn.UserID)
	if err != nil {
		return nil, fmt.Errorf("looking up initiating user %d: %w", txn.UserID, err)
	}
	if initiator == nil {
		return nil, fmt.Errorf("%w: id %d", ErrUserNotFound, txn.UserID)
	}
	if initiator.SchemeID == nil {
		e.metrics.RecordError("resolve")
		return nil, ErrNoSchemeAssigned
	}

	absolute, kind, err := e.resolver.ResolveAbsolute(*initiator.SchemeID, txn.ServiceID)
	if err != nil {
		if errors.Is(err, ErrNoCommissionConfigured) {
			e.metrics.RecordUnconfigured(txn.ServiceID)
			return nil, nil
		}
		e.metrics.RecordError("resolve")
		return nil, err
	}

	// The margin map is fixed here, once per transaction. It is not
	// recomputed per hierarchy level: each eligible role draws its full
	// margin regardless of where in the chain it appears.
	margins := Margins(absolute)

	entries, err := e.distribute(uow, txn, margins, kind)
	if err != nil {
		e.metrics.RecordError("distribute")
		return nil, err
	}

	var distributed float64
	for _, entry := range entries {
		distributed += entry.Amount
	}
	e.metrics.RecordSettlement(txn.ServiceID, len(entries), distributed)
	e.metrics.RecordSettlementDuration(time.Since(start))

	return entries, nil
}

// distribute walks the user ownership chain upward from the initiating
// user, writing a ledger entry for every visited user whose role has a
// positive margin. Users whose role has no margin are skipped, not an
// error. The walk ends at a user with no parent; a revisited user aborts
// with ErrUserCycle.
//
// This is deliberately a separate traversal from the scheme-chain walk in
// the resolver: the two trees are different structures and must not share
// code.
func (e *Engine) distribute(uow *gorm.DB, txn *models.Transaction, margins map[models.Role]float64, kind models.CommissionKind) ([]models.CommissionLedger, error) {
	var entries []models.CommissionLedger
	visited := make(map[uint]struct{})

	current, err := e.users.UserByID(txn.UserID)
	if err != nil {
		return nil, err
	}

	for current != nil {
		if _, seen := visited[current.ID]; seen {
			return nil, fmt.Errorf("%w: user %d revisited", ErrUserCycle, current.ID)
		}
		visited[current.ID] = struct{}{}

		if margin, ok := margins[current.Role]; ok && margin > 0 {
			amount, err := entryAmount(txn.Amount, margin, kind)
			if err != nil {
				return nil, err
			}

			entry := models.CommissionLedger{
				EntryID:       uuid.NewString(),
				TransactionID: txn.ID,
				UserID:        current.ID,
				Role:          current.Role,
				SchemeID:      current.SchemeID,
				ServiceID:     txn.ServiceID,
				Kind:          kind,
				Percent:       margin,
				Amount:        amount,
			}
			if err := e.ledger.InsertLedgerEntry(uow, &entry); err != nil {
				return nil, fmt.Errorf("inserting ledger entry for user %d: %w", current.ID, err)
			}
			entries = append(entries, entry)
		}

		if current.ParentID == nil {
			break
		}
		parent, err := e.users.UserByID(*current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("looking up parent of user %d: %w", current.ID, err)
		}
		current = parent
	}

	return entries, nil
}

// entryAmount computes the monetary amount one ledger entry carries,
// rounded to 2 decimal places. For the flat kind the configured value is
// the amount itself.
func entryAmount(amount, value float64, kind models.CommissionKind) (float64, error) {
	switch kind {
	case models.KindPercentage:
		return round2(amount * value / 100), nil
	case models.KindFlat:
		return round2(value), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCommissionKind, kind)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
