// Package itunes implements the unauthenticated metadata provider on top of
// the public iTunes lookup API. It never sees the platform's keyword field;
// callers synthesize keywords from the public metadata it returns.
package itunes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"storekeys/internal/appstore/rest"
	"storekeys/internal/domain"
)

const defaultBaseURL = "https://itunes.apple.com"

// Lookup responses are cached briefly so several locales sharing one
// storefront reuse a single network call.
const (
	cacheTTL     = 5 * time.Minute
	cacheJanitor = 10 * time.Minute
)

// Client is the public-data MetadataProvider.
type Client struct {
	Base string
	HTTP *http.Client

	cache *cache.Cache
	log   *zap.Logger
}

var _ domain.MetadataProvider = (*Client)(nil)

func New(httpClient *http.Client, log *zap.Logger) *Client {
	return &Client{
		Base:  defaultBaseURL,
		HTTP:  httpClient,
		cache: cache.New(cacheTTL, cacheJanitor),
		log:   log,
	}
}

type lookupResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []lookupResult `json:"results"`
}

type lookupResult struct {
	Kind        string   `json:"kind"`
	WrapperType string   `json:"wrapperType"`
	TrackID     int64    `json:"trackId"`
	TrackName   string   `json:"trackName"`
	BundleID    string   `json:"bundleId"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
}

// Fetch looks up public metadata for id in the given storefront. The
// locale's language subtag is ignored: the lookup API localizes its catalog
// by storefront, not by language tag. preferLive is meaningless here since
// a storefront only ever serves the live version.
func (c *Client) Fetch(ctx context.Context, id domain.AppIdentifier, _ domain.Locale, storefront domain.StorefrontCountry, _ bool) (domain.MetadataRecord, error) {
	if id.Kind == domain.ConnectResourceID {
		return domain.MetadataRecord{}, fmt.Errorf(
			"connect resource id %s requires credentials: %w", id, domain.ErrPermissionDenied)
	}

	key := id.String() + "@" + string(storefront)
	if v, ok := c.cache.Get(key); ok {
		return toRecord(v.(lookupResult)), nil
	}

	q := url.Values{}
	q.Set("entity", "software")
	q.Set("country", string(storefront))
	switch id.Kind {
	case domain.StoreID:
		q.Set("id", id.Value)
	case domain.BundleID:
		q.Set("bundleId", id.Value)
	}

	var out lookupResponse
	if err := rest.GetJSON(ctx, c.HTTP, c.Base+"/lookup?"+q.Encode(), nil, &out); err != nil {
		return domain.MetadataRecord{}, err
	}

	item, ok := pickSoftware(out.Results)
	if !ok {
		return domain.MetadataRecord{}, fmt.Errorf(
			"no %s listing for %s: %w", storefront, id, domain.ErrNotFound)
	}
	c.log.Debug("lookup hit",
		zap.String("identifier", id.String()),
		zap.String("storefront", string(storefront)),
		zap.String("name", item.TrackName))
	c.cache.SetDefault(key, item)
	return toRecord(item), nil
}

// pickSoftware prefers software entries when the lookup returns a mixed
// result set, falling back to the first entry.
func pickSoftware(results []lookupResult) (lookupResult, bool) {
	if len(results) == 0 {
		return lookupResult{}, false
	}
	for _, r := range results {
		if r.Kind == "software" || r.WrapperType == "software" {
			return r, true
		}
	}
	return results[0], true
}

func toRecord(item lookupResult) domain.MetadataRecord {
	return domain.MetadataRecord{
		AppName:     item.TrackName,
		Title:       item.TrackName,
		Description: item.Description,
		Genres:      item.Genres,
		State:       domain.VersionReadyForSale,
	}
}
