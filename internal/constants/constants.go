package constants

// Context/session keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Validation
const (
	MinPasswordLength = 8
)
