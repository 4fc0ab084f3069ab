package idp

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/pkg/errors"

	"github.com/silver-jubilee/backend/internal/domain"
)

const googleIssuerURL = "https://accounts.google.com"

// Verifier checks a third-party identity assertion and returns the verified
// identity. Implementations must reject assertions whose signature,
// audience or expiry do not check out.
type Verifier interface {
	Verify(ctx context.Context, rawIDToken string) (*domain.Identity, error)
}

// GoogleVerifier validates Google-issued ID tokens against the provider's
// published keys.
type GoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewGoogleVerifier(ctx context.Context, clientID string) (*GoogleVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuerURL)
	if err != nil {
		return nil, errors.Wrap(err, "oidc discovery for google failed")
	}

	return &GoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*domain.Identity, error) {
	idToken, err := g.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify google id token failed")
	}

	var claims struct {
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.Wrap(err, "decode google id token claims failed")
	}

	return &domain.Identity{
		Subject: idToken.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}
