package generation

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Common errors returned by the generation package. Each typed error below
// unwraps to one of these, so callers may use errors.Is without caring about
// the concrete type.
var (
	// ErrUnsupportedProvider is returned when the configured provider is not
	// one of the known backends.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrUpstreamAPI is returned when a provider answers with a non-success status.
	ErrUpstreamAPI = errors.New("upstream API error")

	// ErrNetwork is returned when the request to a provider could not complete.
	ErrNetwork = errors.New("network error")

	// ErrResponseParse is returned when the provider response cannot be turned
	// into a lesson.
	ErrResponseParse = errors.New("invalid response from language model")

	// ErrConfiguration is returned when the generator configuration is invalid.
	ErrConfiguration = errors.New("invalid generator configuration")
)

// UnknownErrorMessage is reported when a provider error body carries no
// readable message.
const UnknownErrorMessage = "Unknown error"

// UnsupportedProviderError reports a provider outside the known set.
type UnsupportedProviderError struct {
	Provider Provider
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.Provider)
}

func (e *UnsupportedProviderError) Unwrap() error { return ErrUnsupportedProvider }

// UpstreamAPIError reports a non-success HTTP status from a provider.
// Message is the provider's own reason when it could be read.
type UpstreamAPIError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *UpstreamAPIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = UnknownErrorMessage
	}
	return fmt.Sprintf("%s API error: %s", e.Provider.Label(), msg)
}

func (e *UpstreamAPIError) Unwrap() error { return ErrUpstreamAPI }

// NetworkError reports a transport failure before any response was received.
type NetworkError struct {
	Provider Provider
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Provider.Label(), e.Err)
}

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// Timeout reports whether the transport gave up because of a deadline.
func (e *NetworkError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// ResponseParseError reports provider output that could not be decoded.
// Provider is empty when the error comes from the codec alone.
type ResponseParseError struct {
	Provider Provider
	Reason   string
	Err      error
}

func (e *ResponseParseError) Error() string {
	prefix := "failed to parse lesson"
	if e.Provider != "" {
		prefix = fmt.Sprintf("failed to parse %s response", e.Provider.Label())
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Reason)
}

func (e *ResponseParseError) Unwrap() error { return ErrResponseParse }

// ConfigurationError reports a missing credential or endpoint.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConfiguration, e.Message)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// ClassifyTransportError wraps err as a NetworkError when it came from the
// transport (dial, DNS, TLS, reset, timeout or cancellation). It returns nil
// when err does not look like a transport failure, letting the caller decide.
func ClassifyTransportError(provider Provider, err error) error {
	if err == nil {
		return nil
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return &NetworkError{Provider: provider, Err: err}
	}

	return nil
}
