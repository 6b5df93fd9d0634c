package shopifyauth

import (
	"fmt"
	"net/http"

	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/mynonce"
)

const stateCookieMaxAge = 10 * 60

// StateGuard issues the oauth state at /auth and checks it again on the callback.
type StateGuard interface {
	Issue(w http.ResponseWriter, shop string) (string, error)
	Verify(r *http.Request, state string) error
}

// noStateGuard issues no state and accepts any callback.
type noStateGuard struct{}

func NewNoStateGuard() *noStateGuard {
	return &noStateGuard{}
}

func (g *noStateGuard) Issue(w http.ResponseWriter, shop string) (string, error) {
	return "", nil
}

func (g *noStateGuard) Verify(r *http.Request, state string) error {
	return nil
}

// cookieStateGuard binds a random state to the browser through a short lived cookie.
type cookieStateGuard struct {
	randomStringer mynonce.RandomStringer
	secure         bool
}

func NewCookieStateGuard(randomStringer mynonce.RandomStringer, secure bool) *cookieStateGuard {
	return &cookieStateGuard{
		randomStringer: randomStringer,
		secure:         secure,
	}
}

func (g *cookieStateGuard) Issue(w http.ResponseWriter, shop string) (string, error) {
	state, err := g.randomStringer.Create()
	if err != nil {
		return "", myerrors.NewInternalError(fmt.Errorf("error creating state: %w", err))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     StateCookieName,
		Value:    state,
		Path:     "/auth",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   g.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return state, nil
}

func (g *cookieStateGuard) Verify(r *http.Request, state string) error {
	if state == "" {
		return myerrors.NewInvalidRequestError("missing state parameter")
	}

	cookie, err := r.Cookie(StateCookieName)
	if err != nil || cookie.Value == "" {
		return myerrors.NewInvalidRequestError("missing state cookie")
	}

	if !mynonce.Equal(cookie.Value, state) {
		return myerrors.NewInvalidRequestError("state mismatch")
	}

	return nil
}
