package shopifyauth

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MarcGrol/shopauth/lib/myconfig"
	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myevents"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/mymetrics"
	"github.com/MarcGrol/shopauth/lib/mypublisher"
	"github.com/MarcGrol/shopauth/services/shopifyauth/shopifyclient"
	"github.com/MarcGrol/shopauth/services/shopifyauth/shopifyevents"
)

type handshakeState string

const (
	stateStart      handshakeState = "start"
	stateValidating handshakeState = "validating"
	stateExchanging handshakeState = "exchanging"
	stateIssuing    handshakeState = "issuing"
	stateDone       handshakeState = "done"
	stateRejected   handshakeState = "rejected"
)

// A shop is a single label under myshopify.com; anything else could redirect the token exchange.
var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

type service struct {
	cfg       myconfig.Config
	exchanger shopifyclient.Exchanger
	issuer    SessionIssuer
	publisher mypublisher.Publisher
	metrics   *mymetrics.Metrics
	logger    mylog.Logger
}

func newService(cfg myconfig.Config, exchanger shopifyclient.Exchanger, issuer SessionIssuer, pub mypublisher.Publisher, metrics *mymetrics.Metrics) *service {
	return &service{
		cfg:       cfg,
		exchanger: exchanger,
		issuer:    issuer,
		publisher: pub,
		metrics:   metrics,
		logger:    mylog.New("shopifyauth"),
	}
}

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, shopifyevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %w", shopifyevents.TopicName, err)
	}

	return nil
}

func (s *service) start(c context.Context, shop string, state string) (string, error) {
	if shop == "" {
		return "", myerrors.NewInvalidRequestError("missing shop parameter")
	}

	s.logger.Log(c, shop, mylog.SeverityInfo, "Start installation for shop %s", shop)

	s.publish(c, shopifyevents.InstallationStarted{
		Shop: shop,
	})

	return BuildAuthURLWithState(shop, s.cfg, state), nil
}

// callback runs the handshake: validate, exchange the code, issue the session credential.
// verifyState is part of validation, so a bad state never leads to a network call.
func (s *service) callback(c context.Context, params callbackParams, verifyState func() error) (string, error) {
	current := stateStart
	transition := func(next handshakeState) {
		s.logger.Log(c, params.Shop, mylog.SeverityDebug, "Handshake %s -> %s", current, next)
		current = next
	}

	transition(stateValidating)
	err := validateCallback(params)
	if err == nil {
		err = verifyState()
	}
	if err != nil {
		transition(stateRejected)
		return "", s.reject(c, params.Shop, err)
	}

	transition(stateExchanging)
	token, err := s.exchanger.Exchange(c, shopifyclient.ExchangeRequest{
		Shop: params.Shop,
		Code: params.Code,
	})
	if err != nil {
		transition(stateRejected)
		if !myerrors.Is(err, myerrors.KindExchangeError) {
			err = myerrors.NewExchangeError("token exchange failed", err)
		}
		return "", s.reject(c, params.Shop, err)
	}

	transition(stateIssuing)
	credential, err := s.issuer.Issue(c, params.Shop, token)
	if err != nil {
		transition(stateRejected)
		return "", s.reject(c, params.Shop, err)
	}

	transition(stateDone)
	s.metrics.HandshakeOutcome("success")
	s.publish(c, shopifyevents.InstallationCompleted{
		Shop:  params.Shop,
		Scope: token.Scope,
	})

	s.logger.Log(c, params.Shop, mylog.SeverityInfo, "Completed installation for shop %s", params.Shop)

	return credential, nil
}

func validateCallback(params callbackParams) error {
	if params.Shop == "" {
		return myerrors.NewInvalidRequestError("missing shop parameter")
	}
	if !shopDomainPattern.MatchString(params.Shop) {
		return myerrors.NewInvalidRequestErrorf("shop %q is not a %s domain", params.Shop, shopDomainSuffix)
	}
	if params.Code == "" {
		return myerrors.NewInvalidRequestError("missing code parameter")
	}
	return nil
}

func (s *service) reject(c context.Context, shop string, err error) error {
	kind := myerrors.KindOf(err)

	s.metrics.HandshakeOutcome(string(kind))
	s.publish(c, shopifyevents.InstallationFailed{
		Shop:   shop,
		Kind:   string(kind),
		Reason: err.Error(),
	})

	return err
}

// publish never fails the handshake: the merchant is already mid-flow.
func (s *service) publish(c context.Context, event myevents.Event) {
	err := s.publisher.Publish(c, shopifyevents.TopicName, event)
	if err != nil {
		s.logger.Log(c, event.GetAggregateName(), mylog.SeverityError, "Error publishing %s: %s", event.GetEventTypeName(), err)
	}
}
