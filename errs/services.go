package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Upstream provider errors (external imagery service)
var (
	ErrProviderNotConfigured = errors.New("provider not configured")
	ErrProviderUnavailable   = errors.New("provider unavailable")
	ErrProviderStatus        = errors.New("provider returned non-success status")
)

// NewProviderNotConfiguredError signals a missing provider credential. The
// credential value itself never appears in the error.
func NewProviderNotConfiguredError(provider string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrProviderNotConfigured,
		Details:    fmt.Sprintf("%s credential is not configured", provider),
	}
}

// NewProviderUnavailableError wraps a transport-level failure reaching the
// provider. Single-shot: no retry is attempted anywhere.
func NewProviderUnavailableError(provider string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrProviderUnavailable,
		Details:    fmt.Sprintf("Failed to reach %s", provider),
		Cause:      cause,
	}
}

// NewProviderStatusError carries the upstream status code of a non-success
// provider response.
func NewProviderStatusError(provider string, status int) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrProviderStatus,
		Details:    fmt.Sprintf("%s returned status %d", provider, status),
	}
}

// Error type checkers

func IsProviderNotConfigured(err error) bool {
	return errors.Is(err, ErrProviderNotConfigured)
}

func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

func IsProviderStatus(err error) bool {
	return errors.Is(err, ErrProviderStatus)
}
