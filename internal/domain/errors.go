package domain

import (
	"errors"
	"fmt"
)

// Sentinel failures mapped from provider responses. Callers test with
// errors.Is and keep processing the remaining (app, locale) pairs.
var (
	ErrNotFound         = errors.New("app not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// InvalidIdentifierError reports a CLI token that matches none of the known
// identifier shapes. Fatal at argument-parsing time.
type InvalidIdentifierError struct {
	Raw string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid app identifier %q", e.Raw)
}

// InvalidLocaleError reports a locale tag that does not match the required
// shape. Fatal at argument-parsing time.
type InvalidLocaleError struct {
	Tag string
}

func (e *InvalidLocaleError) Error() string {
	return fmt.Sprintf("invalid locale %q", e.Tag)
}

// CredentialError reports missing or malformed authenticated-mode key
// material. Fatal before any network call.
type CredentialError struct {
	Reason string
}

func (e *CredentialError) Error() string {
	return "credentials: " + e.Reason
}

// TransportError wraps an HTTP failure that maps to neither ErrNotFound nor
// ErrPermissionDenied. Status is zero when the request never completed.
type TransportError struct {
	Status int
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request %s: unexpected status %d", e.URL, e.Status)
}

func (e *TransportError) Unwrap() error { return e.Err }
