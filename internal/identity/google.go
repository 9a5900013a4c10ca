package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
)

var _ model.IdentityProvider = (*Google)(nil)

// Config holds the OAuth client settings for the Google provider. The
// endpoint URLs are configurable so tests can point them at a stub server.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
}

// Google exchanges authorization codes with Google's OAuth endpoints and
// fetches the user info document the assertion is read from.
type Google struct {
	config      *oauth2.Config
	userInfoURL string
	logger      *logger.Logger
}

// NewGoogle creates a Google identity provider.
func NewGoogle(cfg Config, logger *logger.Logger) *Google {
	return &Google{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		logger:      logger,
	}
}

type userInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

// ExchangeCode trades the authorization code for an access token and reads
// the provider's identity assertion. Whether the assertion is trustworthy
// (EmailVerified) is the caller's decision.
func (g *Google) ExchangeCode(ctx context.Context, code string) (model.FederatedIdentity, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := g.config.Client(ctx, token).Do(req)
	if err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.FederatedIdentity{}, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return model.FederatedIdentity{}, fmt.Errorf("failed to decode userinfo: %w", err)
	}

	g.logger.Debug("Google provider: userinfo fetched",
		"email", info.Email,
		"email_verified", info.EmailVerified)

	return model.FederatedIdentity{
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		DisplayName:   info.Name,
	}, nil
}
