package connect

import (
	"time"

	"storekeys/internal/domain"
)

// Version is one App Store version of an app, as listed by the management
// API.
type Version struct {
	ID      string
	State   domain.VersionState
	Created time.Time
}

// PickVersion chooses which version's metadata to report. With preferLive,
// the READY_FOR_SALE version wins when one exists; otherwise the most
// recently created version is used. Equal creation timestamps keep the
// earlier-listed version.
func PickVersion(versions []Version, preferLive bool) (Version, bool) {
	if preferLive {
		for _, v := range versions {
			if v.State == domain.VersionReadyForSale {
				return v, true
			}
		}
	}
	var best Version
	found := false
	for _, v := range versions {
		if !found || v.Created.After(best.Created) {
			best = v
			found = true
		}
	}
	return best, found
}
