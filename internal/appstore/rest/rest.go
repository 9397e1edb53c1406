// Package rest is the thin HTTP/JSON layer both store clients share. It
// maps response statuses onto the domain error taxonomy: 2xx succeeds,
// 401/403 is ErrPermissionDenied, 404 is ErrNotFound, and anything else is
// a *TransportError.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storekeys/internal/domain"
)

// GetJSON issues a GET against url and decodes the JSON body into out.
// A nil header is fine; bearer-authenticated callers pass their own.
func GetJSON(ctx context.Context, client *http.Client, url string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &domain.TransportError{URL: url, Err: err}
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return &domain.TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode/100 == 2:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("get %s: %s: %w", url, resp.Status, domain.ErrPermissionDenied)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("get %s: %s: %w", url, resp.Status, domain.ErrNotFound)
	default:
		return &domain.TransportError{Status: resp.StatusCode, URL: url}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{URL: url, Err: err}
	}
	return nil
}
