package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newIssuer spins up a fake identity provider that serves the given
// discovery document at the well-known path.
func newIssuer(t *testing.T, doc map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/.well-known/openid-configuration" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
}

func TestDiscoverJWKSURL(t *testing.T) {
	issuer := newIssuer(t, map[string]any{
		"issuer":   "https://auth.mamacare.example",
		"jwks_uri": "https://auth.mamacare.example/realms/caregivers/certs",
	})
	defer issuer.Close()

	got, err := DiscoverJWKSURL(issuer.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://auth.mamacare.example/realms/caregivers/certs" {
		t.Errorf("unexpected jwks_uri: %s", got)
	}
}

func TestDiscoverJWKSURL_TrailingSlash(t *testing.T) {
	issuer := newIssuer(t, map[string]any{
		"jwks_uri": "https://auth.mamacare.example/certs",
	})
	defer issuer.Close()

	// The well-known path must not end up with a double slash.
	if _, err := DiscoverJWKSURL(issuer.URL + "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDiscoverJWKSURL_MissingJWKSURI(t *testing.T) {
	issuer := newIssuer(t, map[string]any{
		"issuer": "https://auth.mamacare.example",
	})
	defer issuer.Close()

	_, err := DiscoverJWKSURL(issuer.URL)
	if err == nil {
		t.Fatal("expected error for document without jwks_uri")
	}
	if !strings.Contains(err.Error(), "jwks_uri") {
		t.Errorf("error should name the missing field, got: %v", err)
	}
}

func TestDiscoverJWKSURL_IssuerDown(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	if _, err := DiscoverJWKSURL(broken.URL); err == nil {
		t.Fatal("expected error for non-200 discovery response")
	}
	if _, err := DiscoverJWKSURL("http://127.0.0.1:1"); err == nil {
		t.Fatal("expected error for unreachable issuer")
	}
}
