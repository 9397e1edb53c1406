package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// IdentifierKind discriminates the AppIdentifier union.
type IdentifierKind int

const (
	// StoreID is a numeric App Store track ID (id123456789 or 123456789).
	StoreID IdentifierKind = iota
	// BundleID is a reverse-DNS identifier (com.example.app).
	BundleID
	// ConnectResourceID is the management API's opaque UUID for an app.
	// Only valid in authenticated mode.
	ConnectResourceID
)

func (k IdentifierKind) String() string {
	switch k {
	case StoreID:
		return "store-id"
	case BundleID:
		return "bundle-id"
	case ConnectResourceID:
		return "connect-resource-id"
	}
	return "unknown"
}

// AppIdentifier is a classified app identifier. Exactly one interpretation
// applies; Kind says which one Value carries. Value is normalized: bare
// digits for StoreID, the canonical lowercase-hex UUID for ConnectResourceID.
type AppIdentifier struct {
	Kind  IdentifierKind
	Value string
}

// String renders the identifier the way reports print it; store IDs carry
// the canonical "id" prefix.
func (a AppIdentifier) String() string {
	if a.Kind == StoreID {
		return "id" + a.Value
	}
	return a.Value
}

var (
	storeIDRe  = regexp.MustCompile(`^(?i:id)?([0-9]+)$`)
	bundleIDRe = regexp.MustCompile(`^[A-Za-z0-9]+(\.[A-Za-z0-9_-]+)+$`)
)

// ClassifyIdentifier parses a raw CLI token into an AppIdentifier. Checks
// run in a fixed order: store ID, then connect resource ID (only when
// allowConnectID is set), then bundle ID. Digit-only inputs can never match
// the later shapes, so the union is unambiguous by construction.
func ClassifyIdentifier(raw string, allowConnectID bool) (AppIdentifier, error) {
	token := strings.TrimSpace(raw)
	if m := storeIDRe.FindStringSubmatch(token); m != nil {
		return AppIdentifier{Kind: StoreID, Value: m[1]}, nil
	}
	if allowConnectID && len(token) == 36 {
		if u, err := uuid.Parse(token); err == nil {
			return AppIdentifier{Kind: ConnectResourceID, Value: u.String()}, nil
		}
	}
	if strings.Contains(token, ".") && bundleIDRe.MatchString(token) {
		return AppIdentifier{Kind: BundleID, Value: token}, nil
	}
	return AppIdentifier{}, &InvalidIdentifierError{Raw: raw}
}
