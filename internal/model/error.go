package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeInvalidAccountID     = "INVALID_ACCOUNT_ID"
	ErrCodeNoTicketRequests     = "NO_TICKET_REQUESTS"
	ErrCodeNullTicketRequest    = "NULL_TICKET_REQUEST"
	ErrCodeUnexpectedTicketType = "UNEXPECTED_TICKET_TYPE"
	ErrCodeInvalidTicketCount   = "INVALID_TICKET_COUNT"
	ErrCodeTicketLimit          = "TICKET_LIMIT"
	ErrCodeAdultTicketRequired  = "ADULT_TICKET_REQUIRED"
	ErrCodePurchaseFailed       = "PURCHASE_FAILED"
	ErrCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// InvalidPurchaseError is returned when a purchase breaks a business rule.
// The message of each value is stable and is shown to API clients verbatim.
type InvalidPurchaseError struct {
	Code    string
	Message string
}

func (e *InvalidPurchaseError) Error() string {
	return e.Message
}

// NewInvalidPurchaseError creates a new invalid purchase error
func NewInvalidPurchaseError(code, message string) *InvalidPurchaseError {
	return &InvalidPurchaseError{
		Code:    code,
		Message: message,
	}
}

// Purchase rule violations
var (
	ErrInvalidAccountID     = NewInvalidPurchaseError(ErrCodeInvalidAccountID, "Invalid account ID")
	ErrNoTicketRequests     = NewInvalidPurchaseError(ErrCodeNoTicketRequests, "No ticket requests provided")
	ErrNullTicketRequest    = NewInvalidPurchaseError(ErrCodeNullTicketRequest, "Null ticket request encountered")
	ErrUnexpectedTicketType = NewInvalidPurchaseError(ErrCodeUnexpectedTicketType, "Unexpected ticket type encountered: null")
	ErrInvalidTicketCount   = NewInvalidPurchaseError(ErrCodeInvalidTicketCount, "Invalid ticket count: Ticket count must be a positive number.")
	ErrTicketLimitExceeded  = NewInvalidPurchaseError(ErrCodeTicketLimit, "Invalid ticket purchase: You must buy at least 1 ticket, and a maximum of 25 tickets can be purchased at a time.")
	ErrAdultTicketRequired  = NewInvalidPurchaseError(ErrCodeAdultTicketRequired, "Child and Infant tickets require an accompanying Adult ticket purchase.")
)

// ConfigurationError is returned when pricing configuration is missing or malformed.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error without a cause.
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

// WrapConfigurationError creates a configuration error caused by err.
func WrapConfigurationError(message string, err error) *ConfigurationError {
	return &ConfigurationError{Message: message, Err: err}
}
