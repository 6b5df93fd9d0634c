package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopauth/lib/myconfig"
	"github.com/MarcGrol/shopauth/lib/myhttp"
	"github.com/MarcGrol/shopauth/lib/myhttpclient"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/mymetrics"
	"github.com/MarcGrol/shopauth/lib/mynonce"
	"github.com/MarcGrol/shopauth/lib/mypublisher"
	"github.com/MarcGrol/shopauth/lib/mypubsub"
	"github.com/MarcGrol/shopauth/lib/mystore"
	"github.com/MarcGrol/shopauth/lib/mytime"
	"github.com/MarcGrol/shopauth/lib/myuuid"
	"github.com/MarcGrol/shopauth/services/health"
	"github.com/MarcGrol/shopauth/services/shopifyauth"
	"github.com/MarcGrol/shopauth/services/shopifyauth/shopifyclient"
)

const (
	metricsPath       = "/metrics"
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	sessionPurgeEvery = 10 * time.Minute
)

func runServe(c context.Context) error {
	cfg, err := myconfig.Load()
	if err != nil {
		return err
	}

	err = mylog.Init(cfg.IsProduction())
	if err != nil {
		return err
	}
	defer mylog.Sync()
	logger := mylog.New("main")

	c, stop := signal.NotifyContext(c, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := newHandler(c, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-c.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Log(c, "", mylog.SeverityInfo, "Starting webserver on port %s (try %s/auth?shop=<your-shop>.myshopify.com)", cfg.Port, cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error starting webserver on port %s: %w", cfg.Port, err)
	}

	logger.Log(context.Background(), "", mylog.SeverityInfo, "Webserver stopped")

	return nil
}

func newHandler(c context.Context, cfg myconfig.Config) (http.Handler, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	metrics := mymetrics.New()

	pubsub, pubsubCleanup, err := mypubsub.New(c, cfg.GCloudProject)
	if err != nil {
		return nil, nil, err
	}
	cleanups = append(cleanups, pubsubCleanup)
	pub := mypublisher.New(pubsub, mytime.RealNower{})

	issuer, verifier, checks, sessionsCleanup, err := newSessions(c, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	cleanups = append(cleanups, sessionsCleanup)

	var stateGuard shopifyauth.StateGuard = shopifyauth.NewNoStateGuard()
	if cfg.StateCheck {
		stateGuard = shopifyauth.NewCookieStateGuard(mynonce.NewRandomStringer(), cfg.SecureCookies())
	}

	exchanger := shopifyclient.New(cfg.ClientID, cfg.ClientSecret,
		myhttpclient.New(myhttpclient.WithTimeout(cfg.ExchangeTimeout)))

	router := mux.NewRouter()

	err = shopifyauth.NewService(cfg, exchanger, issuer, stateGuard, pub, metrics).RegisterEndpoints(c, router)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	health.NewService(checks...).RegisterEndpoints(c, router)
	router.Handle(metricsPath, metrics.Handler()).Methods("GET")

	gate := shopifyauth.NewSessionGate(verifier, metrics, append(health.PublicPaths(), metricsPath)...)

	return myhttp.Chain(router,
		myhttp.RequestID(myuuid.RealUUIDer{}),
		myhttp.Recover(mylog.New("recover")),
		gate,
	), cleanup, nil
}

func newSessions(c context.Context, cfg myconfig.Config) (shopifyauth.SessionIssuer, shopifyauth.SessionVerifier, []health.Check, func(), error) {
	if cfg.SessionMode != myconfig.SessionModeServer {
		sessions := shopifyauth.NewTokenCookieSessions()
		return sessions, sessions, nil, func() {}, nil
	}

	store, cleanup, err := mystore.New[shopifyauth.Session](c, mystore.Options{
		GCloudProject: cfg.GCloudProject,
		RedisURL:      cfg.RedisURL,
		KeyPrefix:     "shopauth:",
		TTL:           cfg.SessionTTL,
	})
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("error creating session store: %w", err)
	}

	sessions := shopifyauth.NewServerSessions(store, cfg.SessionSigningKey, cfg.SessionTTL, mytime.RealNower{}, myuuid.RealUUIDer{})
	warmup := func(c context.Context) error {
		_, _, err := store.Get(c, "warmup")
		return err
	}

	purgeCtx, cancel := context.WithCancel(c)
	go sessions.PurgeEvery(purgeCtx, sessionPurgeEvery)

	return sessions, sessions, []health.Check{warmup}, func() {
		cancel()
		cleanup()
	}, nil
}
