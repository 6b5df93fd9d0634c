package myhttp

import (
	"net/http"
	"runtime/debug"

	"github.com/MarcGrol/shopauth/lib/mycontext"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/myuuid"
)

const RequestIDHeader = "X-Request-Id"

type Middleware func(http.Handler) http.Handler

// Chain applies the middlewares so that the first one is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func RequestID(uuider myuuid.UUIDer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuider.Create()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(mycontext.WithRequestID(r.Context(), id)))
		})
	}
}

func Recover(logger mylog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Log(r.Context(), "", mylog.SeverityError, "panic serving %s: %v\n%s", r.URL.Path, rec, debug.Stack())
					http.Error(w, "internal error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
