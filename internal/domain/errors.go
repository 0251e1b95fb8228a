package domain

import "errors"

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInternalError     = errors.New("internal error")
	ErrUserNotFound      = errors.New("user not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrNameRequired      = errors.New("name is required")
	ErrNameTooLong       = errors.New("name exceeds maximum length")

	ErrAccountNameExists      = errors.New("account with this name already exists")
	ErrInvalidAccountType     = errors.New("account type must be 'cash' or 'bank'")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryNameExists     = errors.New("category with this name and type already exists")
	ErrInvalidCategoryType    = errors.New("category type must be 'income' or 'expense'")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrAmountPrecision        = errors.New("amount has more than 4 decimal places")
	ErrBalancePrecision       = errors.New("initial balance has more than 4 decimal places")
	ErrInvalidTransactionType = errors.New("transaction type must be 'income' or 'expense'")
	ErrAccountRequired        = errors.New("account is required")
	ErrCategoryRequired       = errors.New("category is required")
	ErrDescriptionTooLong     = errors.New("description exceeds maximum length")
	ErrNoteTooLong            = errors.New("note exceeds maximum length")
	ErrInvalidCurrency        = errors.New("currency must be a 3-letter ISO 4217 code")
	ErrInvalidTimezone        = errors.New("timezone must be a valid IANA name")
	ErrSubscriptionClosed     = errors.New("ledger subscription closed")
)

// Validation constants
const (
	MaxAccountNameLength     = 255
	MaxCategoryNameLength    = 100
	MaxWorkspaceNameLength   = 100
	MaxDescriptionLength     = 500
	MaxAccountNoteLength     = 500
	MoneyScale               = 4 // decimal places stored for amounts and balances
	DefaultWorkspaceCurrency = "USD"
	DefaultWorkspaceTimezone = "UTC"
)
