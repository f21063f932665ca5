// Package googleauth issues bearer tokens for calls to the model services.
package googleauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/auth/credentials/idtoken"
)

// ErrEmptyToken signals a provider that returned no token value.
var ErrEmptyToken = errors.New("empty token")

// IDTokenProvider mints a Google-signed ID token for every call. Credentials come from
// CredentialsFile when set, otherwise from the environment (ADC or the metadata server).
// Tokens are never reused across calls.
type IDTokenProvider struct {
	credentialsFile string
	client          *http.Client
}

// NewIDTokenProvider creates an ID token provider. client may be nil.
func NewIDTokenProvider(credentialsFile string, client *http.Client) *IDTokenProvider {
	return &IDTokenProvider{credentialsFile: credentialsFile, client: client}
}

// Token returns a fresh ID token whose audience is the target endpoint.
func (p *IDTokenProvider) Token(ctx context.Context, audience string) (string, error) {
	creds, err := idtoken.NewCredentials(&idtoken.Options{
		Audience:        audience,
		CredentialsFile: p.credentialsFile,
		Client:          p.client,
	})
	if err != nil {
		return "", fmt.Errorf("id token credentials: %w", err)
	}
	tok, err := creds.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("id token for %s: %w", audience, err)
	}
	if tok.Value == "" {
		return "", fmt.Errorf("id token for %s: %w", audience, ErrEmptyToken)
	}
	return tok.Value, nil
}

// StaticProvider returns a fixed token. Used for local model services that accept any bearer.
type StaticProvider struct {
	token string
}

// NewStaticProvider creates a static token provider.
func NewStaticProvider(token string) *StaticProvider {
	return &StaticProvider{token: token}
}

// Token returns the configured token.
func (p *StaticProvider) Token(_ context.Context, audience string) (string, error) {
	if p.token == "" {
		return "", fmt.Errorf("static token for %s: %w", audience, ErrEmptyToken)
	}
	return p.token, nil
}
