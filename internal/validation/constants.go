package validation

const (
	// Amount limits
	MinTransactionAmount = 0.01
	MaxTransactionAmount = 1000000.00

	// Password requirements
	MinPasswordLength = 8
	MaxPasswordLength = 72

	// Percentage caps are absolute percentages
	MaxCommissionPercent = 100.0

	// Pagination
	MaxPageSize = 100
)
