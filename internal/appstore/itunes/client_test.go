package itunes_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"storekeys/internal/appstore/itunes"
	"storekeys/internal/domain"
)

func newClient(t *testing.T, handler http.HandlerFunc) (*itunes.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := itunes.New(srv.Client(), zap.NewNop())
	c.Base = srv.URL
	return c, srv
}

func lookupBody(name string) string {
	return fmt.Sprintf(`{
		"resultCount": 2,
		"results": [
			{"wrapperType": "artist", "trackName": "ignored"},
			{"kind": "software", "trackName": %q, "trackId": 123456789,
			 "description": "Make ringtones.", "genres": ["Music"]}
		]
	}`, name)
}

func TestFetch_ByStoreID(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, lookupBody("Ringtone Studio"))
	})

	id := domain.AppIdentifier{Kind: domain.StoreID, Value: "123456789"}
	rec, err := c.Fetch(context.Background(), id, "en-US", "us", false)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if rec.AppName != "Ringtone Studio" {
		t.Fatalf("got app name %q", rec.AppName)
	}
	if rec.ExistingKeywords != nil {
		t.Fatal("public provider must not return authoritative keywords")
	}
	if got := gotQuery["id"]; len(got) != 1 || got[0] != "123456789" {
		t.Fatalf("id param: %v", gotQuery)
	}
	if got := gotQuery["country"]; len(got) != 1 || got[0] != "us" {
		t.Fatalf("country param: %v", gotQuery)
	}
}

func TestFetch_ByBundleID(t *testing.T) {
	var gotQuery map[string][]string
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, lookupBody("Ringtone Studio"))
	})

	id := domain.AppIdentifier{Kind: domain.BundleID, Value: "com.example.ringtones"}
	if _, err := c.Fetch(context.Background(), id, "de-DE", "de", false); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := gotQuery["bundleId"]; len(got) != 1 || got[0] != "com.example.ringtones" {
		t.Fatalf("bundleId param: %v", gotQuery)
	}
}

func TestFetch_EmptyResultIsNotFound(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"resultCount": 0, "results": []}`)
	})

	id := domain.AppIdentifier{Kind: domain.StoreID, Value: "42"}
	_, err := c.Fetch(context.Background(), id, "en-US", "jp", false)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestFetch_ServerErrorIsTransportError(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	id := domain.AppIdentifier{Kind: domain.StoreID, Value: "42"}
	_, err := c.Fetch(context.Background(), id, "en-US", "us", false)
	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TransportError", err)
	}
	if te.Status != http.StatusBadGateway {
		t.Fatalf("got status %d", te.Status)
	}
}

func TestFetch_ConnectIDRejected(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	id := domain.AppIdentifier{Kind: domain.ConnectResourceID, Value: "6f1bd07f-2e4f-4e0a-9e2b-0c5d9a6b1234"}
	_, err := c.Fetch(context.Background(), id, "en-US", "us", false)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("got %v, want ErrPermissionDenied", err)
	}
}

func TestFetch_CachesPerStorefront(t *testing.T) {
	calls := 0
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, lookupBody("Ringtone Studio"))
	})

	id := domain.AppIdentifier{Kind: domain.StoreID, Value: "123456789"}
	ctx := context.Background()

	// Two locales sharing a storefront hit the network once.
	if _, err := c.Fetch(ctx, id, "en-US", "us", false); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, err := c.Fetch(ctx, id, "es-US", "us", false); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("got %d lookup calls, want 1", calls)
	}

	// A different storefront is a fresh lookup.
	if _, err := c.Fetch(ctx, id, "de-DE", "de", false); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls != 2 {
		t.Fatalf("got %d lookup calls, want 2", calls)
	}
}
