// Package token mints the ES256-signed bearer tokens the management API
// requires, reusing each token until shortly before it expires.
package token

import (
	"crypto/ecdsa"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storekeys/internal/domain"
)

const (
	// audience is fixed by the management API.
	audience = "appstoreconnect-v1"

	// MaxTTL is the longest lifetime the management API accepts.
	MaxTTL = 20 * time.Minute

	// refreshSlack renews a token this close to expiry so an in-flight
	// request never carries a token that lapses mid-call.
	refreshSlack = 30 * time.Second
)

// Signer produces bearer tokens from a private key issued for the
// management API. It is safe for concurrent use.
type Signer struct {
	keyID    string
	issuerID string
	key      *ecdsa.PrivateKey
	ttl      time.Duration
	now      func() time.Time

	mu     sync.Mutex
	bearer string
	expiry time.Time
}

var _ domain.TokenSource = (*Signer)(nil)

// New parses the PEM-encoded EC private key and builds a signer. TTLs
// outside (0, MaxTTL] are clamped to MaxTTL: an oversized TTL is always a
// misconfiguration the caller meant as "max".
func New(keyID, issuerID string, pemKey []byte, ttl time.Duration) (*Signer, error) {
	key, err := jwt.ParseECPrivateKeyFromPEM(pemKey)
	if err != nil {
		return nil, &domain.CredentialError{Reason: fmt.Sprintf("parse private key: %v", err)}
	}
	if ttl <= 0 || ttl > MaxTTL {
		ttl = MaxTTL
	}
	return &Signer{
		keyID:    keyID,
		issuerID: issuerID,
		key:      key,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Bearer returns a signed token, minting a fresh one only when the cached
// token is missing or about to expire.
func (s *Signer) Bearer() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.bearer != "" && now.Add(refreshSlack).Before(s.expiry) {
		return s.bearer, nil
	}

	expiry := now.Add(s.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.MapClaims{
		"iss": s.issuerID,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(expiry),
		"aud": audience,
	})
	tok.Header["kid"] = s.keyID

	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", &domain.CredentialError{Reason: fmt.Sprintf("sign token: %v", err)}
	}
	s.bearer = signed
	s.expiry = expiry
	return signed, nil
}
