package doorkeep

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Discord OAuth2 endpoints. x/oauth2 has no stock Endpoint for Discord so it
// is declared here.
var discordEndpoint = oauth2.Endpoint{
	AuthURL:  "https://discord.com/api/oauth2/authorize",
	TokenURL: "https://discord.com/api/oauth2/token",
}

const discordUserInfoURL = "https://discord.com/api/users/@me"

// ProviderIdentity is the validated shape of a Discord /users/@me response.
// Email is nil when Discord did not supply one (email scope not granted, or
// no verified email on the account). GlobalName and Avatar may be empty,
// Discord returns null for both on accounts that never set them.
type ProviderIdentity struct {
	ID         string  `json:"id"`
	Username   string  `json:"username"`
	GlobalName string  `json:"global_name"`
	Avatar     string  `json:"avatar"`
	Email      *string `json:"email"`
	Verified   bool    `json:"verified"`
}

// DiscordProvider wraps the provider half of the handshake: building the
// authorization URL, exchanging the authorization code, and fetching the
// account identity.
type DiscordProvider struct {
	oauthConfig oauth2.Config

	// UserInfoURL is the identity endpoint. Defaults to Discord's API.
	// Can be overridden for testing.
	UserInfoURL string

	// HTTPClient, if set, is used for the code exchange and identity fetch.
	// Can be overridden for testing.
	HTTPClient *http.Client
}

func NewDiscordProvider(cfg *Config) *DiscordProvider {
	return &DiscordProvider{
		UserInfoURL: discordUserInfoURL,
		oauthConfig: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"identify", "email"},
			Endpoint:     discordEndpoint,
		},
	}
}

// SetEndpoint overrides the authorization and token endpoints for testing.
func (p *DiscordProvider) SetEndpoint(ep oauth2.Endpoint) {
	p.oauthConfig.Endpoint = ep
}

// SetHTTPClient sets the HTTP client used for provider calls.
func (p *DiscordProvider) SetHTTPClient(client *http.Client) {
	p.HTTPClient = client
}

// AuthCodeURL builds the authorization URL carrying the given state.
func (p *DiscordProvider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

// Exchange trades an authorization code for an access token. Discord only
// accepts each code once; a failed exchange is terminal for the attempt.
func (p *DiscordProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.oauthConfig.Exchange(p.exchangeContext(ctx), code)
}

// FetchIdentity calls the identity endpoint with the access token and
// validates the response shape. A response without an account id is
// rejected.
func (p *DiscordProvider) FetchIdentity(ctx context.Context, token *oauth2.Token) (*ProviderIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.getHTTPClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info from discord: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discord identity endpoint returned %d", resp.StatusCode)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed read response: %w", err)
	}

	var identity ProviderIdentity
	if err := json.Unmarshal(contents, &identity); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}
	if identity.ID == "" {
		return nil, fmt.Errorf("discord identity response missing id")
	}
	return &identity, nil
}

// exchangeContext routes the token exchange through the injectable client.
func (p *DiscordProvider) exchangeContext(ctx context.Context) context.Context {
	if p.HTTPClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	}
	return ctx
}

func (p *DiscordProvider) getHTTPClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}
