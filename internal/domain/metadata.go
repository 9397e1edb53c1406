package domain

// VersionState classifies an app version's store lifecycle state. Only the
// live state matters to version selection; everything else is Other.
type VersionState int

const (
	VersionOther VersionState = iota
	VersionReadyForSale
)

// MetadataRecord is the normalized metadata both providers return for one
// (identifier, locale) pair.
//
// ExistingKeywords is the platform's authoritative keyword field and is only
// populated by the authenticated provider; when it is nil the caller
// synthesizes keywords from the public fields instead.
type MetadataRecord struct {
	AppName          string
	Title            string
	Subtitle         string
	Description      string
	Genres           []string
	ExistingKeywords *string
	State            VersionState
}
