package health

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopauth/lib/mycontext"
	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myhttp"
	"github.com/MarcGrol/shopauth/lib/mylog"
)

const (
	healthPath = "/healthz"
	warmupPath = "/_ah/warmup"
)

// Check is run on warmup, e.g. to open the connection to the session store.
type Check func(c context.Context) error

type webService struct {
	logger mylog.Logger
	checks []Check
}

func NewService(checks ...Check) *webService {
	return &webService{
		logger: mylog.New("health"),
		checks: checks,
	}
}

// PublicPaths are reachable without a session.
func PublicPaths() []string {
	return []string{healthPath, warmupPath}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc(healthPath, s.healthPage()).Methods("GET")
	router.HandleFunc(warmupPath, s.warmupPage()).Methods("GET")
}

func (s *webService) healthPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		myhttp.NewWriter(s.logger).WriteText(c, w, http.StatusOK, "ok")
	}
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		for _, check := range s.checks {
			err := check(c)
			if err != nil {
				errorWriter.WriteError(c, w, 1, myerrors.NewInternalError(err))
				return
			}
		}

		errorWriter.WriteText(c, w, http.StatusOK, "Successfully processed warmup request")
	}
}
