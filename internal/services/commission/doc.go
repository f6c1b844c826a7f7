/*
Package commission implements commission resolution and settlement for the
reseller hierarchy.

Settlement of a transaction happens in three steps:

 1. Resolve the effective absolute commission rate per role for the
    initiating user's scheme and the transaction's service. The resolver
    walks the scheme ancestor chain; for each role the nearest ancestor
    that configures a value wins. Absolute rates are cumulative ceilings,
    not shares.

 2. Convert absolute rates into margins: the non-overlapping share each
    role actually keeps, obtained by subtracting the nearest more junior
    configured rate. Margins of zero or below are dropped.

 3. Walk the initiating user's ownership chain (parent-user links, a
    different tree than the scheme tree) and write one ledger entry per
    visited user whose role carries a positive margin.

Usage:

	resolver := commission.NewResolver(schemeDir, capStore)
	engine := commission.NewEngine(resolver, userDir, ledgerWriter, metrics)

	err := db.Transaction(func(tx *gorm.DB) error {
	    if err := tx.Create(txn).Error; err != nil {
	        return err
	    }
	    _, err := engine.Settle(tx, txn)
	    return err
	})

Settle must run inside the same unit of work that creates the transaction
row; any error rolls back both the transaction and its ledger entries.
Settle is not idempotent — callers must deduplicate on transaction identity
before invoking it again.

When no ancestor scheme configures any rate for the service, settlement
succeeds with zero ledger entries rather than failing the transaction.
Both tree walks carry a visited-set guard and abort with a configuration
error on cyclic data instead of looping.
*/
package commission
