package trust

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorCategory represents the category of an error for handling decisions.
type ErrorCategory string

const (
	ErrorCategoryNetwork   ErrorCategory = "network"    // Network connectivity issues
	ErrorCategoryRateLimit ErrorCategory = "rate_limit" // Rate limiting
	ErrorCategoryTimeout   ErrorCategory = "timeout"    // Request timeout
	ErrorCategoryAuth      ErrorCategory = "auth"       // Authentication/authorization
	ErrorCategoryConfig    ErrorCategory = "config"     // Configuration issues
	ErrorCategoryParse     ErrorCategory = "parse"      // Malformed provider payload
	ErrorCategoryProvider  ErrorCategory = "provider"   // Provider-specific errors
	ErrorCategoryInternal  ErrorCategory = "internal"   // Internal errors
)

// Common errors
var (
	ErrMissingCredentials = errors.New("trust: provider credentials not configured")
	ErrEmptyContent       = errors.New("trust: no content to analyze")
	ErrTimeout            = errors.New("trust: operation timeout")
	ErrRateLimited        = errors.New("trust: rate limited by provider")

	// Network errors
	ErrNetworkUnreachable = errors.New("trust: network unreachable")
	ErrConnectionRefused  = errors.New("trust: connection refused")
	ErrDNSResolution      = errors.New("trust: DNS resolution failed")

	// Auth errors
	ErrAuthFailed        = errors.New("trust: authentication failed")
	ErrInvalidCredential = errors.New("trust: invalid credentials")
)

// ProviderError represents an error from a signal provider.
type ProviderError struct {
	Provider   string        // Provider name (sightengine, perspective, llm)
	Code       string        // Error code from provider
	Message    string        // Error message
	StatusCode int           // HTTP status code if applicable
	Category   ErrorCategory // Error category for handling
	Retryable  bool          // Whether this error is retryable
	Err        error         // Underlying error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("trust: provider %s error [%d/%s]: %s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("trust: provider %s error [%s]: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, code, message string) *ProviderError {
	pe := &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Category: ErrorCategoryProvider,
	}
	pe.Retryable = pe.isRetryable()
	return pe
}

// WithStatusCode sets the HTTP status code.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	e.Category = categorizeByStatusCode(code)
	e.Retryable = e.isRetryable()
	return e
}

// WithCategory sets the error category.
func (e *ProviderError) WithCategory(cat ErrorCategory) *ProviderError {
	e.Category = cat
	e.Retryable = e.isRetryable()
	return e
}

// WithCause sets the underlying error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Err = err
	return e
}

func (e *ProviderError) isRetryable() bool {
	switch e.Category {
	case ErrorCategoryNetwork, ErrorCategoryRateLimit, ErrorCategoryTimeout:
		return true
	}
	switch e.StatusCode {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func categorizeByStatusCode(code int) ErrorCategory {
	switch {
	case code == 401 || code == 403:
		return ErrorCategoryAuth
	case code == 429:
		return ErrorCategoryRateLimit
	case code == 408 || code == 504:
		return ErrorCategoryTimeout
	case code >= 500:
		return ErrorCategoryInternal
	default:
		return ErrorCategoryProvider
	}
}

// IsProviderError checks if an error is a provider error.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrMissingCredentials) {
		return false
	}

	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrConnectionRefused) {
		return true
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}

	return IsNetworkError(err)
}

// IsNetworkError checks if an error is a network-related error.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrConnectionRefused) ||
		errors.Is(err, ErrDNSResolution) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	networkPatterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"connection timed out",
		"dial tcp",
		"dial udp",
	}
	for _, pattern := range networkPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}

// IsAuthError checks if an error is an authentication/authorization error.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthFailed) || errors.Is(err, ErrInvalidCredential) {
		return true
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category == ErrorCategoryAuth
	}

	return false
}

// GetErrorCategory returns the category of an error.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}

	if errors.Is(err, ErrMissingCredentials) {
		return ErrorCategoryConfig
	}
	if IsNetworkError(err) {
		return ErrorCategoryNetwork
	}
	if errors.Is(err, ErrTimeout) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, ErrRateLimited) {
		return ErrorCategoryRateLimit
	}
	if IsAuthError(err) {
		return ErrorCategoryAuth
	}

	return ErrorCategoryInternal
}

// WrapNetworkError wraps a network error with the appropriate sentinel error.
func WrapNetworkError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "connection refused") {
		return fmt.Errorf("%w: %v", ErrConnectionRefused, err)
	}
	if strings.Contains(msg, "no such host") || strings.Contains(msg, "dns") {
		return fmt.Errorf("%w: %v", ErrDNSResolution, err)
	}
	if strings.Contains(msg, "network is unreachable") {
		return fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out") {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return err
}
