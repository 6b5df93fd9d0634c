package shopifyauth

import "time"

const (
	AuthCookieName  = "auth_token"
	StateCookieName = "auth_state"

	shopDomainSuffix = ".myshopify.com"
)

// Session is kept server side when sessions are in server mode; the cookie only references it.
type Session struct {
	UID         string
	Shop        string
	AccessToken string `datastore:",noindex"`
	Scope       string `datastore:",noindex"`
	CreatedAt   time.Time
}

type authParams struct {
	Shop string `form:"shop"`
}

type callbackParams struct {
	Shop  string `form:"shop"`
	Code  string `form:"code"`
	State string `form:"state"`
}

type dashboardParams struct {
	Shop string `form:"shop"`
}
