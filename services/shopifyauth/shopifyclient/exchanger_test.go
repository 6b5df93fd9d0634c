package shopifyclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/myhttpclient"
)

func shopifyStub(t *testing.T, status int, body string) (*httptest.Server, string) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/oauth/access_token", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		payload, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"client_id":"key123","client_secret":"secret456","code":"abc"}`, string(payload))

		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)

	// The shop "domain" is the stub's host:port
	return ts, strings.TrimPrefix(ts.URL, "https://")
}

func TestExchange(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ts, shop := shopifyStub(t, http.StatusOK, `{"access_token":"shpat_1","scope":"read_products"}`)
		sut := New("key123", "secret456", myhttpclient.New(myhttpclient.WithHTTPClient(ts.Client())))

		resp, err := sut.Exchange(context.Background(), ExchangeRequest{Shop: shop, Code: "abc"})

		require.NoError(t, err)
		assert.Equal(t, "shpat_1", resp.AccessToken)
		assert.Equal(t, "read_products", resp.Scope)
	})

	t.Run("Non-2xx status", func(t *testing.T) {
		ts, shop := shopifyStub(t, http.StatusBadRequest, `{"error":"invalid_request"}`)
		sut := New("key123", "secret456", myhttpclient.New(myhttpclient.WithHTTPClient(ts.Client())))

		_, err := sut.Exchange(context.Background(), ExchangeRequest{Shop: shop, Code: "abc"})

		assert.True(t, myerrors.Is(err, myerrors.KindExchangeError))
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("Malformed json", func(t *testing.T) {
		ts, shop := shopifyStub(t, http.StatusOK, `<html>`)
		sut := New("key123", "secret456", myhttpclient.New(myhttpclient.WithHTTPClient(ts.Client())))

		_, err := sut.Exchange(context.Background(), ExchangeRequest{Shop: shop, Code: "abc"})

		assert.True(t, myerrors.Is(err, myerrors.KindExchangeError))
	})

	t.Run("Missing access_token", func(t *testing.T) {
		ts, shop := shopifyStub(t, http.StatusOK, `{"scope":"read_products"}`)
		sut := New("key123", "secret456", myhttpclient.New(myhttpclient.WithHTTPClient(ts.Client())))

		_, err := sut.Exchange(context.Background(), ExchangeRequest{Shop: shop, Code: "abc"})

		assert.True(t, myerrors.Is(err, myerrors.KindExchangeError))
		assert.Contains(t, err.Error(), "access_token")
	})

	t.Run("Network failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sender := myhttpclient.NewMockHTTPSender(ctrl)
		sut := New("key123", "secret456", sender)

		// given
		sender.EXPECT().Send(gomock.Any(), http.MethodPost, "https://shop1.myshopify.com/admin/oauth/access_token", gomock.Any()).
			DoAndReturn(func(c context.Context, method string, url string, body []byte) (int, []byte, error) {
				req := tokenRequest{}
				assert.NoError(t, json.Unmarshal(body, &req))
				assert.Equal(t, "abc", req.Code)
				return 0, nil, errors.New("connection refused")
			})

		// when
		_, err := sut.Exchange(context.Background(), ExchangeRequest{Shop: "shop1.myshopify.com", Code: "abc"})

		// then
		assert.True(t, myerrors.Is(err, myerrors.KindExchangeError))
		assert.ErrorContains(t, err, "connection refused")
	})
}
