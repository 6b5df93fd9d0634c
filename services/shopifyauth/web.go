package shopifyauth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopauth/lib/myconfig"
	"github.com/MarcGrol/shopauth/lib/mycontext"
	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myhttp"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/mymetrics"
	"github.com/MarcGrol/shopauth/lib/mypublisher"
	"github.com/MarcGrol/shopauth/services/shopifyauth/shopifyclient"
)

type webService struct {
	service       *service
	stateGuard    StateGuard
	secureCookies bool
	decoder       *formcodec.Decoder
	logger        mylog.Logger
}

func NewService(cfg myconfig.Config, exchanger shopifyclient.Exchanger, issuer SessionIssuer, stateGuard StateGuard, pub mypublisher.Publisher, metrics *mymetrics.Metrics) *webService {
	return &webService{
		service:       newService(cfg, exchanger, issuer, pub, metrics),
		stateGuard:    stateGuard,
		secureCookies: cfg.SecureCookies(),
		decoder:       formcodec.NewDecoder(),
		logger:        mylog.New("shopifyauth"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc(authPath, s.authPage()).Methods("GET")
	router.HandleFunc(callbackPath, s.callbackPage()).Methods("GET")
	router.HandleFunc("/", s.dashboardPage()).Methods("GET")

	err := s.service.CreateTopics(c)
	if err != nil {
		return err
	}

	return nil
}

func (s *webService) decodeQuery(r *http.Request, dest any) error {
	err := s.decoder.Decode(dest, r.URL.Query())
	if err != nil {
		return myerrors.NewInvalidRequestErrorf("error decoding query: %s", err)
	}
	return nil
}

func (s *webService) authPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		params := authParams{}
		err := s.decodeQuery(r, &params)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		if params.Shop == "" {
			errorWriter.WriteError(c, w, 2, myerrors.NewInvalidRequestError("missing shop parameter"))
			return
		}

		state, err := s.stateGuard.Issue(w, params.Shop)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		authURL, err := s.service.start(c, params.Shop, state)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

func (s *webService) callbackPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		params := callbackParams{}
		err := s.decodeQuery(r, &params)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		credential, err := s.service.callback(c, params, func() error {
			return s.stateGuard.Verify(r, params.State)
		})
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     AuthCookieName,
			Value:    credential,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})

		http.Redirect(w, r, "/?"+url.Values{"shop": {params.Shop}}.Encode(), http.StatusFound)
	}
}

func (s *webService) dashboardPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		params := dashboardParams{}
		err := s.decodeQuery(r, &params)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		if params.Shop == "" {
			errorWriter.WriteText(c, w, http.StatusOK, "Please provide a shop parameter")
			return
		}

		errorWriter.WriteText(c, w, http.StatusOK, fmt.Sprintf("Welcome to your dashboard for shop: %s", params.Shop))
	}
}
