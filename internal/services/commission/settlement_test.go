package commission

import (
	"testing"

	"rezopay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainFixture builds a root scheme with one cap record and a
// retailer -> distributor -> admin ownership chain.
//
// Absolute rates: DISTRIBUTOR=5, RETAILER=3 => margins DISTRIBUTOR=2,
// RETAILER=3.
func chainFixture() (*fakeSchemes, *fakeCaps, *fakeUsers) {
	schemes := &fakeSchemes{schemes: map[uint]*models.Scheme{
		1: scheme(1, nil),
	}}
	caps := &fakeCaps{caps: map[capKey]*models.SchemeCommission{
		{1, testServiceID}: {
			SchemeID:    1,
			ServiceID:   testServiceID,
			Kind:        models.KindPercentage,
			Distributor: ptr(5),
			Retailer:    ptr(3),
		},
	}}
	users := &fakeUsers{users: map[uint]*models.User{
		1: user(1, models.RoleAdmin, nil, nil),
		2: user(2, models.RoleDistributor, uintPtr(1), uintPtr(1)),
		3: user(3, models.RoleRetailer, uintPtr(2), uintPtr(1)),
	}}
	return schemes, caps, users
}

func txn(id, userID uint, amount float64) *models.Transaction {
	t := &models.Transaction{UserID: userID, SchemeID: 1, ServiceID: testServiceID, Amount: amount}
	t.ID = id
	return t
}

func TestSettle_DistributesMarginsAlongUserChain(t *testing.T) {
	schemes, caps, users := chainFixture()
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	entries, err := engine.Settle(nil, txn(10, 3, 1000))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Walk order: retailer first, then distributor. The admin has no
	// configured rate and is skipped.
	assert.Equal(t, uint(3), entries[0].UserID)
	assert.Equal(t, models.RoleRetailer, entries[0].Role)
	assert.Equal(t, 3.0, entries[0].Percent)
	assert.Equal(t, 30.00, entries[0].Amount)

	assert.Equal(t, uint(2), entries[1].UserID)
	assert.Equal(t, models.RoleDistributor, entries[1].Role)
	assert.Equal(t, 2.0, entries[1].Percent)
	assert.Equal(t, 20.00, entries[1].Amount)

	assert.Equal(t, entries, ledger.entries)
	for _, entry := range entries {
		assert.Equal(t, uint(10), entry.TransactionID)
		assert.Equal(t, models.KindPercentage, entry.Kind)
		assert.NotEmpty(t, entry.EntryID)
	}
}

func TestSettle_RoundsToTwoDecimals(t *testing.T) {
	schemes, caps, users := chainFixture()
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	// 333.33 * 3% = 9.9999 -> 10.00
	entries, err := engine.Settle(nil, txn(11, 3, 333.33))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 10.00, entries[0].Amount)
	assert.Equal(t, 6.67, entries[1].Amount)
}

func TestSettle_FlatKind(t *testing.T) {
	schemes, caps, users := chainFixture()
	caps.caps[capKey{1, testServiceID}].Kind = models.KindFlat
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	entries, err := engine.Settle(nil, txn(12, 3, 1000))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Flat margins are constant amounts, independent of the transaction
	// amount.
	assert.Equal(t, 3.00, entries[0].Amount)
	assert.Equal(t, 2.00, entries[1].Amount)
}

func TestSettle_NoSchemeAssigned(t *testing.T) {
	schemes, caps, users := chainFixture()
	users.users[3].SchemeID = nil
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	_, err := engine.Settle(nil, txn(13, 3, 1000))
	assert.ErrorIs(t, err, ErrNoSchemeAssigned)
	assert.Empty(t, ledger.entries)
}

func TestSettle_NoCommissionConfigured(t *testing.T) {
	schemes, _, users := chainFixture()
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, &fakeCaps{caps: map[capKey]*models.SchemeCommission{}}), users, ledger, nil)

	// Zero commission distributed is a successful settlement, not a
	// transaction failure.
	entries, err := engine.Settle(nil, txn(14, 3, 1000))
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, ledger.entries)
}

func TestSettle_ZeroMarginSkipsUser(t *testing.T) {
	schemes, caps, users := chainFixture()
	// Distributor's absolute rate collapses onto the retailer's: the
	// distributor's margin is zero and no entry may be written.
	caps.caps[capKey{1, testServiceID}].Distributor = ptr(3)
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	entries, err := engine.Settle(nil, txn(15, 3, 1000))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.RoleRetailer, entries[0].Role)
}

func TestSettle_UserCycleDetected(t *testing.T) {
	schemes, caps, users := chainFixture()
	// 2 -> 3 -> 2: deliberately cyclic ownership chain.
	users.users[2].ParentID = uintPtr(3)
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	_, err := engine.Settle(nil, txn(16, 3, 1000))
	assert.ErrorIs(t, err, ErrUserCycle)
}

func TestSettle_LedgerFailurePropagates(t *testing.T) {
	schemes, caps, users := chainFixture()
	ledger := &fakeLedger{failAfter: 1}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	// The second insert fails; the error must reach the caller so the
	// surrounding unit of work rolls everything back.
	_, err := engine.Settle(nil, txn(17, 3, 1000))
	assert.ErrorIs(t, err, errLedgerWrite)
}

// Settle has no built-in idempotency: invoking it twice for the same
// transaction writes two full sets of entries. Deduplication on
// transaction identity is the caller's job.
func TestSettle_SecondInvocationDuplicatesEntries(t *testing.T) {
	schemes, caps, users := chainFixture()
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	tx := txn(18, 3, 1000)
	_, err := engine.Settle(nil, tx)
	require.NoError(t, err)
	_, err = engine.Settle(nil, tx)
	require.NoError(t, err)

	assert.Len(t, ledger.entries, 4)
}

// The margin map is fixed once per settlement, so repeated roles in a
// chain each draw the same full margin. Documents current behavior.
func TestSettle_RepeatedRoleDrawsMarginTwice(t *testing.T) {
	schemes, caps, users := chainFixture()
	users.users[4] = user(4, models.RoleRetailer, uintPtr(3), uintPtr(1))
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	entries, err := engine.Settle(nil, txn(19, 4, 1000))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, entries[0].Amount, entries[1].Amount)
	assert.Equal(t, models.RoleRetailer, entries[0].Role)
	assert.Equal(t, models.RoleRetailer, entries[1].Role)
}

func TestSettle_UnknownUser(t *testing.T) {
	schemes, caps, users := chainFixture()
	ledger := &fakeLedger{}
	engine := NewEngine(NewResolver(schemes, caps), users, ledger, nil)

	_, err := engine.Settle(nil, txn(20, 99, 1000))
	assert.ErrorIs(t, err, ErrUserNotFound)
}
