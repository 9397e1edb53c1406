// Package connect implements the authenticated metadata provider on top of
// the App Store Connect management API. Every request carries a signed
// bearer token; in return it can read the platform's authoritative keyword
// field, which the public provider never sees.
package connect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"storekeys/internal/appstore/rest"
	"storekeys/internal/domain"
)

const defaultBaseURL = "https://api.appstoreconnect.apple.com"

// Client is the authenticated MetadataProvider.
type Client struct {
	Base     string
	HTTP     *http.Client
	Tokens   domain.TokenSource
	Platform string // IOS, MAC_OS, TV_OS

	log *zap.Logger
}

var _ domain.MetadataProvider = (*Client)(nil)

func New(httpClient *http.Client, tokens domain.TokenSource, platform string, log *zap.Logger) *Client {
	return &Client{
		Base:     defaultBaseURL,
		HTTP:     httpClient,
		Tokens:   tokens,
		Platform: platform,
		log:      log,
	}
}

type appResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Name     string `json:"name"`
		BundleID string `json:"bundleId"`
	} `json:"attributes"`
}

type versionResource struct {
	ID         string `json:"id"`
	Attributes struct {
		AppStoreState string    `json:"appStoreState"`
		CreatedDate   time.Time `json:"createdDate"`
	} `json:"attributes"`
}

type localizationResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Locale      string `json:"locale"`
		Description string `json:"description"`
		Keywords    string `json:"keywords"`
	} `json:"attributes"`
}

// Fetch resolves id to an app resource, picks a version, and returns that
// version's localization for loc, keywords included verbatim. The
// storefront parameter is unused: the management API is not storefront
// scoped.
func (c *Client) Fetch(ctx context.Context, id domain.AppIdentifier, loc domain.Locale, _ domain.StorefrontCountry, preferLive bool) (domain.MetadataRecord, error) {
	app, err := c.resolveApp(ctx, id)
	if err != nil {
		return domain.MetadataRecord{}, err
	}

	version, err := c.pickVersion(ctx, app.ID, preferLive)
	if err != nil {
		return domain.MetadataRecord{}, fmt.Errorf("app %s: %w", id, err)
	}

	l10n, err := c.localization(ctx, version.ID, loc)
	if err != nil {
		return domain.MetadataRecord{}, fmt.Errorf("app %s: %w", id, err)
	}

	keywords := l10n.Attributes.Keywords
	return domain.MetadataRecord{
		AppName:          app.Attributes.Name,
		Title:            app.Attributes.Name,
		Description:      l10n.Attributes.Description,
		ExistingKeywords: &keywords,
		State:            version.State,
	}, nil
}

// resolveApp maps any identifier kind onto the management API's app
// resource. Connect resource IDs address the resource directly; bundle and
// store IDs go through a filtered list call.
func (c *Client) resolveApp(ctx context.Context, id domain.AppIdentifier) (appResource, error) {
	if id.Kind == domain.ConnectResourceID {
		var doc struct {
			Data appResource `json:"data"`
		}
		if err := c.get(ctx, "/v1/apps/"+url.PathEscape(id.Value), &doc); err != nil {
			return appResource{}, fmt.Errorf("resolve %s: %w", id, err)
		}
		return doc.Data, nil
	}

	q := url.Values{}
	q.Set("limit", "1")
	switch id.Kind {
	case domain.BundleID:
		q.Set("filter[bundleId]", id.Value)
	case domain.StoreID:
		q.Set("filter[id]", id.Value)
	}
	var doc struct {
		Data []appResource `json:"data"`
	}
	if err := c.get(ctx, "/v1/apps?"+q.Encode(), &doc); err != nil {
		return appResource{}, fmt.Errorf("resolve %s: %w", id, err)
	}
	if len(doc.Data) == 0 {
		return appResource{}, fmt.Errorf("resolve %s: %w", id, domain.ErrNotFound)
	}
	return doc.Data[0], nil
}

func (c *Client) pickVersion(ctx context.Context, appID string, preferLive bool) (Version, error) {
	q := url.Values{}
	q.Set("filter[platform]", c.Platform)
	q.Set("limit", "200")
	var doc struct {
		Data []versionResource `json:"data"`
	}
	path := "/v1/apps/" + url.PathEscape(appID) + "/appStoreVersions?" + q.Encode()
	if err := c.get(ctx, path, &doc); err != nil {
		return Version{}, err
	}

	versions := make([]Version, 0, len(doc.Data))
	for _, v := range doc.Data {
		state := domain.VersionOther
		if v.Attributes.AppStoreState == "READY_FOR_SALE" {
			state = domain.VersionReadyForSale
		}
		versions = append(versions, Version{ID: v.ID, State: state, Created: v.Attributes.CreatedDate})
	}
	picked, ok := PickVersion(versions, preferLive)
	if !ok {
		return Version{}, fmt.Errorf("no %s versions: %w", c.Platform, domain.ErrNotFound)
	}
	return picked, nil
}

// localization finds the version localization for loc: exact tag match
// first (case-insensitive), then any localization sharing the language
// subtag.
func (c *Client) localization(ctx context.Context, versionID string, loc domain.Locale) (localizationResource, error) {
	var doc struct {
		Data []localizationResource `json:"data"`
	}
	path := "/v1/appStoreVersions/" + url.PathEscape(versionID) + "/appStoreVersionLocalizations?limit=200"
	if err := c.get(ctx, path, &doc); err != nil {
		return localizationResource{}, err
	}

	want := strings.ToLower(string(loc))
	for _, l := range doc.Data {
		if strings.ToLower(l.Attributes.Locale) == want {
			return l, nil
		}
	}
	lang := want
	if i := strings.IndexByte(lang, '-'); i > 0 {
		lang = lang[:i]
	}
	for _, l := range doc.Data {
		if strings.HasPrefix(strings.ToLower(l.Attributes.Locale), lang) {
			c.log.Debug("falling back to language match",
				zap.String("requested", string(loc)),
				zap.String("matched", l.Attributes.Locale))
			return l, nil
		}
	}
	return localizationResource{}, fmt.Errorf("no %s localization: %w", loc, domain.ErrNotFound)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	bearer, err := c.Tokens.Bearer()
	if err != nil {
		return err
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+bearer)
	return rest.GetJSON(ctx, c.HTTP, c.Base+path, header, out)
}
