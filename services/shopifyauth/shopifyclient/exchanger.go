package shopifyclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myhttpclient"
	"github.com/MarcGrol/shopauth/lib/mylog"
)

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
}

type exchanger struct {
	clientID     string
	clientSecret string
	httpSender   myhttpclient.HTTPSender
	logger       mylog.Logger
}

func New(clientID string, clientSecret string, httpSender myhttpclient.HTTPSender) *exchanger {
	return &exchanger{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpSender:   httpSender,
		logger:       mylog.New("shopifyclient"),
	}
}

func tokenURL(shop string) string {
	return fmt.Sprintf("https://%s/admin/oauth/access_token", shop)
}

// Exchange trades an authorization code for a permanent access token. It is never retried:
// a code is single-use.
func (e *exchanger) Exchange(c context.Context, req ExchangeRequest) (ExchangeResponse, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     e.clientID,
		ClientSecret: e.clientSecret,
		Code:         req.Code,
	})
	if err != nil {
		return ExchangeResponse{}, myerrors.NewInternalError(err)
	}

	httpStatus, respBody, err := e.httpSender.Send(c, http.MethodPost, tokenURL(req.Shop), body)
	if err != nil {
		return ExchangeResponse{}, myerrors.NewExchangeError("token request failed", err)
	}

	if httpStatus < 200 || httpStatus >= 300 {
		return ExchangeResponse{}, myerrors.NewExchangeError(fmt.Sprintf("token endpoint returned http-status %d", httpStatus), nil)
	}

	resp := ExchangeResponse{}
	err = json.Unmarshal(respBody, &resp)
	if err != nil {
		return ExchangeResponse{}, myerrors.NewExchangeError("malformed token response", err)
	}

	if resp.AccessToken == "" {
		return ExchangeResponse{}, myerrors.NewExchangeError("token response lacks access_token", nil)
	}

	e.logger.Log(c, req.Shop, mylog.SeverityInfo, "Obtained access token for shop %s (scope: %s)", req.Shop, resp.Scope)

	return resp, nil
}
