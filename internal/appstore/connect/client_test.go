package connect_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storekeys/internal/appstore/connect"
	"storekeys/internal/domain"
)

type staticTokens string

func (s staticTokens) Bearer() (string, error) { return string(s), nil }

// fakeAPI is a minimal management API with one app carrying a live version
// and a newer in-review version, each localized for en-US and de-DE.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	requireBearer := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return false
		}
		return true
	}

	mux.HandleFunc("/v1/apps", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		if r.URL.Query().Get("filter[bundleId]") == "com.example.gone" {
			fmt.Fprint(w, `{"data": []}`)
			return
		}
		fmt.Fprint(w, `{"data": [{"id": "app-1", "attributes": {"name": "Ringtone Studio", "bundleId": "com.example.ringtones"}}]}`)
	})
	mux.HandleFunc("/v1/apps/deadbeef-0000-4000-8000-000000000000", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		fmt.Fprint(w, `{"data": {"id": "app-1", "attributes": {"name": "Ringtone Studio", "bundleId": "com.example.ringtones"}}}`)
	})
	mux.HandleFunc("/v1/apps/app-1/appStoreVersions", func(w http.ResponseWriter, r *http.Request) {
		if !requireBearer(w, r) {
			return
		}
		fmt.Fprint(w, `{"data": [
			{"id": "v-review", "attributes": {"appStoreState": "IN_REVIEW", "createdDate": "2026-03-01T00:00:00Z"}},
			{"id": "v-live", "attributes": {"appStoreState": "READY_FOR_SALE", "createdDate": "2026-01-01T00:00:00Z"}}
		]}`)
	})
	for vid, kw := range map[string]string{"v-live": "ringtone,garage band", "v-review": "draft keywords"} {
		path := "/v1/appStoreVersions/" + vid + "/appStoreVersionLocalizations"
		keywords := kw
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if !requireBearer(w, r) {
				return
			}
			fmt.Fprintf(w, `{"data": [
				{"id": "l-en", "attributes": {"locale": "en-US", "description": "Make ringtones.", "keywords": %q}},
				{"id": "l-de", "attributes": {"locale": "de-DE", "description": "Klingeltöne.", "keywords": "klingelton"}}
			]}`, keywords)
		})
	}
	return httptest.NewServer(mux)
}

func newClient(t *testing.T, srv *httptest.Server) *connect.Client {
	t.Helper()
	c := connect.New(srv.Client(), staticTokens("test-token"), "IOS", zap.NewNop())
	c.Base = srv.URL
	return c
}

func TestFetch_PreferLiveReturnsLiveKeywords(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := newClient(t, srv)

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.ringtones"}
	rec, err := c.Fetch(context.Background(), id, "en-US", "us", true)
	require.NoError(t, err)
	require.Equal(t, "Ringtone Studio", rec.AppName)
	require.NotNil(t, rec.ExistingKeywords)
	require.Equal(t, "ringtone,garage band", *rec.ExistingKeywords)
	require.Equal(t, domain.VersionReadyForSale, rec.State)
}

func TestFetch_DefaultPicksNewestVersion(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := newClient(t, srv)

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.ringtones"}
	rec, err := c.Fetch(context.Background(), id, "en-US", "us", false)
	require.NoError(t, err)
	require.NotNil(t, rec.ExistingKeywords)
	require.Equal(t, "draft keywords", *rec.ExistingKeywords)
}

func TestFetch_LocaleSelectsLocalization(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := newClient(t, srv)

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.ringtones"}
	rec, err := c.Fetch(context.Background(), id, "de-DE", "de", true)
	require.NoError(t, err)
	require.Equal(t, "klingelton", *rec.ExistingKeywords)

	// A bare language tag falls back to the language-prefix match.
	rec, err = c.Fetch(context.Background(), id, "de", "us", true)
	require.NoError(t, err)
	require.Equal(t, "klingelton", *rec.ExistingKeywords)

	// No localization for the language at all.
	_, err = c.Fetch(context.Background(), id, "fr-FR", "fr", true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch_ConnectResourceIDAddressesAppDirectly(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := newClient(t, srv)

	id := domain.AppIdentifier{Kind: domain.ConnectResourceID, Value: "deadbeef-0000-4000-8000-000000000000"}
	rec, err := c.Fetch(context.Background(), id, "en-US", "us", true)
	require.NoError(t, err)
	require.Equal(t, "Ringtone Studio", rec.AppName)
}

func TestFetch_UnknownBundleIsNotFound(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := newClient(t, srv)

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.gone"}
	_, err := c.Fetch(context.Background(), id, "en-US", "us", true)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFetch_BadTokenIsPermissionDenied(t *testing.T) {
	srv := fakeAPI(t)
	defer srv.Close()
	c := connect.New(srv.Client(), staticTokens("wrong"), "IOS", zap.NewNop())
	c.Base = srv.URL

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.ringtones"}
	_, err := c.Fetch(context.Background(), id, "en-US", "us", true)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}
