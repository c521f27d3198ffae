package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating RSA key: %v", err)
	}
	return key
}

func jwkFor(key *rsa.PrivateKey, kid string) JWKSKey {
	pub := &key.PublicKey
	return JWKSKey{
		Kty: "RSA",
		Kid: kid,
		Use: "sig",
		Alg: "RS256",
		N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
	}
}

// jwksEndpoint serves whatever keys the callback returns for the nth fetch.
func jwksEndpoint(keys func(fetch int32) []JWKSKey, fetches *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(JWKSResponse{Keys: keys(n)})
	}))
}

func TestJWKSCache_FetchAndHit(t *testing.T) {
	key := testRSAKey(t)
	var fetches atomic.Int32
	srv := jwksEndpoint(func(int32) []JWKSKey {
		return []JWKSKey{jwkFor(key, "mamacare-signing-1")}
	}, &fetches)
	defer srv.Close()

	cache := NewJWKSCache(srv.URL, 10*time.Minute)

	got, err := cache.GetKey("mamacare-signing-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.N.Cmp(key.PublicKey.N) != 0 || got.E != key.PublicKey.E {
		t.Error("fetched key does not match the published one")
	}

	if _, err := cache.GetKey("mamacare-signing-1"); err != nil {
		t.Fatalf("unexpected error on warm cache: %v", err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("expected a single upstream fetch, got %d", n)
	}
}

func TestJWKSCache_RefetchesUnknownKid(t *testing.T) {
	oldKey := testRSAKey(t)
	newKey := testRSAKey(t)

	var fetches atomic.Int32
	srv := jwksEndpoint(func(fetch int32) []JWKSKey {
		if fetch == 1 {
			return []JWKSKey{jwkFor(oldKey, "mamacare-signing-1")}
		}
		// The provider rotated keys after the first fetch.
		return []JWKSKey{
			jwkFor(oldKey, "mamacare-signing-1"),
			jwkFor(newKey, "mamacare-signing-2"),
		}
	}, &fetches)
	defer srv.Close()

	cache := NewJWKSCache(srv.URL, 10*time.Minute)

	if _, err := cache.GetKey("mamacare-signing-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// An unseen kid must bypass the still-fresh cache and refetch.
	got, err := cache.GetKey("mamacare-signing-2")
	if err != nil {
		t.Fatalf("unexpected error after rotation: %v", err)
	}
	if got.N.Cmp(newKey.PublicKey.N) != 0 {
		t.Error("rotated key does not match the published one")
	}
	if n := fetches.Load(); n != 2 {
		t.Errorf("expected 2 upstream fetches, got %d", n)
	}
}

func TestJWKSCache_UnknownKidAfterRefetch(t *testing.T) {
	key := testRSAKey(t)
	var fetches atomic.Int32
	srv := jwksEndpoint(func(int32) []JWKSKey {
		return []JWKSKey{jwkFor(key, "mamacare-signing-1")}
	}, &fetches)
	defer srv.Close()

	cache := NewJWKSCache(srv.URL, 10*time.Minute)
	if _, err := cache.GetKey("never-published"); err == nil {
		t.Fatal("expected error for kid the provider never published")
	}
}

func TestJWKSCache_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := NewJWKSCache(srv.URL, 10*time.Minute)
	if _, err := cache.GetKey("mamacare-signing-1"); err == nil {
		t.Fatal("expected error when the JWKS endpoint is failing")
	}
}

func TestParseRSAPublicKey(t *testing.T) {
	key := testRSAKey(t)

	pub, err := parseRSAPublicKey(jwkFor(key, "mamacare-signing-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pub.N.Cmp(key.PublicKey.N) != 0 || pub.E != key.PublicKey.E {
		t.Error("round-tripped key does not match")
	}

	if _, err := parseRSAPublicKey(JWKSKey{N: "%%not-base64%%", E: "AQAB"}); err == nil {
		t.Error("expected error for malformed modulus")
	}
	if _, err := parseRSAPublicKey(JWKSKey{N: "AQAB", E: "%%not-base64%%"}); err == nil {
		t.Error("expected error for malformed exponent")
	}
}

func TestJWKSKeyFunc_RequiresKid(t *testing.T) {
	keyFunc := jwksKeyFunc("http://127.0.0.1:1")

	_, err := keyFunc(&jwt.Token{Header: map[string]interface{}{}})
	if err == nil {
		t.Fatal("expected error for token without a kid header")
	}
}
