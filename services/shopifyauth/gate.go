package shopifyauth

import (
	"net/http"
	"net/url"

	"github.com/MarcGrol/shopauth/lib/mycontext"
	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myhttp"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/mymetrics"
)

const (
	authPath     = "/auth"
	callbackPath = "/auth/callback"
)

// NewSessionGate redirects every request without a session to /auth. The handshake endpoints
// always pass, the public paths pass as well.
func NewSessionGate(verifier SessionVerifier, metrics *mymetrics.Metrics, publicPaths ...string) myhttp.Middleware {
	logger := mylog.New("sessiongate")

	exempt := map[string]bool{
		authPath:     true,
		callbackPath: true,
	}
	for _, p := range publicPaths {
		exempt[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exempt[r.URL.Path] {
				metrics.GateDecision("exempt")
				next.ServeHTTP(w, r)
				return
			}

			c := mycontext.ContextFromHTTPRequest(r)
			err := verifier.Verify(c, r)
			if err != nil {
				if !myerrors.Is(err, myerrors.KindUnauthenticated) {
					logger.Log(c, "", mylog.SeverityError, "Error verifying session for %s: %s", r.URL.Path, err)
				}
				metrics.GateDecision("redirected")
				http.Redirect(w, r, loginRedirect(r), http.StatusFound)
				return
			}

			metrics.GateDecision("admitted")
			next.ServeHTTP(w, r)
		})
	}
}

func loginRedirect(r *http.Request) string {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		return authPath
	}
	return authPath + "?" + url.Values{"shop": {shop}}.Encode()
}
