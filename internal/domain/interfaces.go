package domain

import "context"

// MetadataProvider fetches normalized store metadata for one identifier.
//
// The public variant scopes the lookup by storefront and ignores the
// locale's language subtag; the authenticated variant additionally selects
// the localization matching loc. preferLive asks for the READY_FOR_SALE
// version when several versions exist (authenticated mode only; public
// listings are always the live version).
//
// Failures are ErrNotFound, ErrPermissionDenied, or a *TransportError.
type MetadataProvider interface {
	Fetch(ctx context.Context, id AppIdentifier, loc Locale, storefront StorefrontCountry, preferLive bool) (MetadataRecord, error)
}

// TokenSource produces bearer tokens for the management API. Implementations
// may reuse a token until it nears expiry.
type TokenSource interface {
	Bearer() (string, error)
}
