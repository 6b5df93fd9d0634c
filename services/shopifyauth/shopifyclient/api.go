package shopifyclient

import (
	"context"
)

type ExchangeRequest struct {
	Shop string
	Code string
}

type ExchangeResponse struct {
	AccessToken string `json:"access_token"`
	// Informational only: the scopes the merchant actually granted
	Scope string `json:"scope"`
}

//go:generate mockgen -source=api.go -package shopifyclient -destination exchanger_mock.go Exchanger
type Exchanger interface {
	Exchange(c context.Context, req ExchangeRequest) (ExchangeResponse, error)
}
