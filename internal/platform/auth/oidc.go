package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// discoveryDocument is the subset of an OpenID Connect discovery response
// the server consumes. Token validation only needs the JWKS location;
// the issuer field is kept for the sanity check below.
type discoveryDocument struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

var discoveryClient = &http.Client{Timeout: 10 * time.Second}

// DiscoverJWKSURL resolves the JWKS endpoint for an issuer by fetching
// <issuer>/.well-known/openid-configuration. Works with Keycloak, Auth0
// and any other compliant provider, so operators only have to configure
// the issuer URL.
func DiscoverJWKSURL(issuer string) (string, error) {
	wellKnown := strings.TrimRight(issuer, "/") + "/.well-known/openid-configuration"

	resp, err := discoveryClient.Get(wellKnown)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", wellKnown, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("discovery endpoint %s returned %d", wellKnown, resp.StatusCode)
	}

	var doc discoveryDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decoding discovery document: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", fmt.Errorf("discovery document for %s has no jwks_uri", issuer)
	}

	return doc.JWKSURI, nil
}
