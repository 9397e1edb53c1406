package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"storekeys/internal/domain"
	"storekeys/internal/keywords"
)

// Config is the environment-derived runtime configuration. It is built once
// at startup and passed into the wiring; no component reads the environment
// after this point.
type Config struct {
	// Authenticated-mode credentials. All empty means public mode.
	KeyID          string
	IssuerID       string
	PrivateKeyPath string
	PrivateKeyPEM  string

	DefaultCountry domain.StorefrontCountry
	CharLimit      int
	TokenTTL       time.Duration
	HTTPTimeout    time.Duration
}

const (
	defaultCountry     = "us"
	defaultHTTPTimeout = 30 * time.Second
	defaultTokenTTL    = 20 * time.Minute
)

// FromEnv reads the recognized environment options, applying defaults for
// anything unset. Malformed numeric values are fatal before any network
// work.
func FromEnv() (Config, error) {
	cfg := Config{
		KeyID:          os.Getenv("KEY_ID"),
		IssuerID:       os.Getenv("ISSUER_ID"),
		PrivateKeyPath: os.Getenv("PRIVATE_KEY_PATH"),
		PrivateKeyPEM:  os.Getenv("PRIVATE_KEY"),
		DefaultCountry: defaultCountry,
		CharLimit:      keywords.DefaultCharLimit,
		TokenTTL:       defaultTokenTTL,
		HTTPTimeout:    defaultHTTPTimeout,
	}

	if v := os.Getenv("DEFAULT_COUNTRY"); v != "" {
		cfg.DefaultCountry = domain.StorefrontCountry(v)
	}
	if v := os.Getenv("CHAR_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("CHAR_LIMIT: %q is not a positive integer", v)
		}
		cfg.CharLimit = n
	}
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL: %q is not a positive number of seconds", v)
		}
		cfg.TokenTTL = time.Duration(n) * time.Second
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("HTTP_TIMEOUT: %q is not a positive number of seconds", v)
		}
		cfg.HTTPTimeout = time.Duration(n) * time.Second
	}
	return cfg, nil
}

// HasCredentials reports whether any authenticated-mode option is set.
// Partly-set credentials are a CredentialError, caught in the wiring.
func (c Config) HasCredentials() bool {
	return c.KeyID != "" || c.IssuerID != "" || c.PrivateKeyPath != "" || c.PrivateKeyPEM != ""
}

// PrivateKey returns the PEM key material, inline value first.
func (c Config) PrivateKey() ([]byte, error) {
	if c.PrivateKeyPEM != "" {
		return []byte(c.PrivateKeyPEM), nil
	}
	if c.PrivateKeyPath == "" {
		return nil, &domain.CredentialError{Reason: "PRIVATE_KEY or PRIVATE_KEY_PATH must be set"}
	}
	pem, err := os.ReadFile(c.PrivateKeyPath)
	if err != nil {
		return nil, &domain.CredentialError{Reason: fmt.Sprintf("read %s: %v", c.PrivateKeyPath, err)}
	}
	return pem, nil
}
