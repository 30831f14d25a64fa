package gateway

import (
	"context"
	"fmt"
	"net/http"

	pkghttp "minibank/internal/pkg/http"
	"minibank/services/transaction"
)

const authorizePath = "/api/v2/authorize"

// AuthorizerGW implements the transaction.AuthorizationGW interface against
// the external authorizer service.
type AuthorizerGW struct {
	client *pkghttp.Client
}

// NewAuthorizerGW creates a new authorization gateway
func NewAuthorizerGW(client *pkghttp.Client) transaction.AuthorizationGW {
	return &AuthorizerGW{client: client}
}

// IsAuthorized asks the authorizer for a decision. A 403 is an explicit deny.
// Any other non-success response, timeout or transport failure is an error so
// callers can tell "denied" apart from "authorizer broken".
func (g *AuthorizerGW) IsAuthorized(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.client.BaseURL+authorizePath, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build authorize request: %w", err)
	}

	resp, err := g.client.HTTPClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach authorizer: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("authorizer returned unexpected status %d", resp.StatusCode)
	}

	return true, nil
}
