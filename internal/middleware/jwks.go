package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultJWKSRefreshInterval bounds how often an unknown kid can trigger a
// refetch of the key set.
const DefaultJWKSRefreshInterval = 5 * time.Minute

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSClient caches the RSA signing keys published by the user pool.
type JWKSClient struct {
	url             string
	httpClient      *http.Client
	refreshInterval time.Duration
	group           singleflight.Group

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	lastFetch time.Time
}

type JWKSOption func(*JWKSClient)

func WithHTTPClient(c *http.Client) JWKSOption {
	return func(j *JWKSClient) { j.httpClient = c }
}

func WithRefreshInterval(d time.Duration) JWKSOption {
	return func(j *JWKSClient) { j.refreshInterval = d }
}

func NewJWKSClient(url string, opts ...JWKSOption) *JWKSClient {
	c := &JWKSClient{
		url:             url,
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		refreshInterval: DefaultJWKSRefreshInterval,
		keys:            make(map[string]*rsa.PublicKey),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JWKSClient) lookup(kid string) (*rsa.PublicKey, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key, ok := c.keys[kid]
	stale := c.lastFetch.IsZero() || time.Since(c.lastFetch) > c.refreshInterval
	return key, ok, stale
}

// GetKey returns the key for kid, refetching the set at most once per
// refresh interval. Concurrent misses share a single fetch.
func (c *JWKSClient) GetKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	key, ok, stale := c.lookup(kid)
	if ok {
		return key, nil
	}
	if !stale {
		return nil, fmt.Errorf("key with kid %q not found in JWKS", kid)
	}

	_, err, _ := c.group.Do("refresh", func() (any, error) {
		return nil, c.refresh(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
	}

	key, ok, _ = c.lookup(kid)
	if !ok {
		return nil, fmt.Errorf("key with kid %q not found in JWKS", kid)
	}
	return key, nil
}

func (c *JWKSClient) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	var set struct {
		Keys []jwk `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return fmt.Errorf("failed to decode JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(set.Keys))
	for _, k := range set.Keys {
		if k.Kty != "RSA" || (k.Use != "" && k.Use != "sig") {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			continue
		}
		keys[k.Kid] = pub
	}

	c.mu.Lock()
	c.keys = keys
	c.lastFetch = time.Now()
	c.mu.Unlock()

	return nil
}

func (k jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	n, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	e, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	exp := new(big.Int).SetBytes(e)
	if !exp.IsInt64() || exp.Int64() < 3 {
		return nil, fmt.Errorf("invalid exponent")
	}
	return &rsa.PublicKey{N: new(big.Int).SetBytes(n), E: int(exp.Int64())}, nil
}
