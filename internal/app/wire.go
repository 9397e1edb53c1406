// Package app builds the dependency graph for one CLI invocation: config
// from the environment, an HTTP client with the configured timeout, and
// the metadata provider selected once from the available credentials. The
// rest of the pipeline never branches on the mode again.
package app

import (
	"net/http"

	"go.uber.org/zap"

	"storekeys/internal/appstore/connect"
	"storekeys/internal/appstore/itunes"
	"storekeys/internal/domain"
	"storekeys/internal/token"
)

// Wire bundles the provider and shared collaborators for the CLI.
type Wire struct {
	Provider      domain.MetadataProvider
	Authenticated bool
	HTTP          *http.Client
	Log           *zap.Logger
}

// NewWire constructs the graph from cfg. Complete credentials select the
// authenticated provider; no credentials select the public one; anything
// in between is a CredentialError.
func NewWire(cfg Config, platform string, log *zap.Logger) (*Wire, error) {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	if !cfg.HasCredentials() {
		return &Wire{
			Provider: itunes.New(httpClient, log.Named("itunes")),
			HTTP:     httpClient,
			Log:      log,
		}, nil
	}

	if cfg.KeyID == "" || cfg.IssuerID == "" {
		return nil, &domain.CredentialError{Reason: "KEY_ID and ISSUER_ID must both be set"}
	}
	pem, err := cfg.PrivateKey()
	if err != nil {
		return nil, err
	}
	signer, err := token.New(cfg.KeyID, cfg.IssuerID, pem, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	return &Wire{
		Provider:      connect.New(httpClient, signer, platform, log.Named("connect")),
		Authenticated: true,
		HTTP:          httpClient,
		Log:           log,
	}, nil
}
