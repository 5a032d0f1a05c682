package domain

// Error is a business error with a stable machine-readable code. The set of
// values below is closed: orchestration code wraps these sentinels with
// fmt.Errorf("%w: ...") for context and callers match them with errors.Is.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

var (
	// ErrAccountNotFound is returned when the account service has no record
	// for the id, or the lookup itself failed.
	ErrAccountNotFound = &Error{Code: "ACCOUNT_NOT_FOUND", Message: "account not found"}
	// ErrAccountInactive is returned for FROZEN or CLOSED accounts.
	ErrAccountInactive = &Error{Code: "ACCOUNT_INACTIVE", Message: "account is frozen or closed"}
	// ErrCustomerNotFound is returned when the customer lookup fails.
	ErrCustomerNotFound = &Error{Code: "CUSTOMER_NOT_FOUND", Message: "customer not found"}
	// ErrKYCNotVerified is returned when the customer's KYC status is not VERIFIED.
	ErrKYCNotVerified = &Error{Code: "KYC_NOT_VERIFIED", Message: "customer KYC is not verified"}
	// ErrInvalidAmount is returned for zero or negative amounts.
	ErrInvalidAmount = &Error{Code: "INVALID_AMOUNT", Message: "amount must be positive"}
	// ErrInsufficientFunds is returned when a withdrawal exceeds the balance.
	ErrInsufficientFunds = &Error{Code: "INSUFFICIENT_FUNDS", Message: "insufficient funds"}
	// ErrDailyLimitExceeded is returned when a debit would break the daily ceiling.
	ErrDailyLimitExceeded = &Error{Code: "DAILY_LIMIT_EXCEEDED", Message: "daily withdrawal limit exceeded"}
	// ErrAccountServiceUnavailable is returned when the balance patch fails.
	ErrAccountServiceUnavailable = &Error{Code: "ACCOUNT_SERVICE_UNAVAILABLE", Message: "account service unavailable"}
	// ErrInternal covers persistence and other unexpected failures.
	ErrInternal = &Error{Code: "INTERNAL_ERROR", Message: "internal error"}
)
