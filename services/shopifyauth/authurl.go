package shopifyauth

import (
	"fmt"

	"golang.org/x/oauth2"

	"github.com/MarcGrol/shopauth/lib/myconfig"
)

func oauthConfig(shop string, cfg myconfig.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("https://%s/admin/oauth/authorize", shop),
			TokenURL: fmt.Sprintf("https://%s/admin/oauth/access_token", shop),
		},
		RedirectURL: cfg.CallbackURL(),
		// Shopify wants the scopes comma separated, oauth2 would join with spaces
		Scopes: []string{cfg.ScopeString()},
	}
}

// BuildAuthURL returns the authorize URL the merchant is sent to. The shop is used as is.
func BuildAuthURL(shop string, cfg myconfig.Config) string {
	return BuildAuthURLWithState(shop, cfg, "")
}

// BuildAuthURLWithState adds a state parameter when state is not empty.
func BuildAuthURLWithState(shop string, cfg myconfig.Config, state string) string {
	return oauthConfig(shop, cfg).AuthCodeURL(state)
}
