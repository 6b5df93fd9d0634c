package myhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopauth/lib/mycontext"
	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/mylog"
	"github.com/MarcGrol/shopauth/lib/myuuid"
)

func TestResponseWriter(t *testing.T) {
	writer := NewWriter(mylog.New("test"))

	t.Run("Domain error", func(t *testing.T) {
		response := httptest.NewRecorder()
		writer.WriteError(context.TODO(), response, 1, myerrors.NewInvalidRequestError("missing code"))

		assert.Equal(t, 400, response.Code)
		assert.Equal(t, "text/plain; charset=utf-8", response.Header().Get("Content-Type"))
		assert.Equal(t, "invalid_request: missing code", response.Body.String())
	})

	t.Run("Plain error", func(t *testing.T) {
		response := httptest.NewRecorder()
		writer.WriteError(context.TODO(), response, 2, fmt.Errorf("boom"))

		assert.Equal(t, 500, response.Code)
		assert.Equal(t, "internal: internal error", response.Body.String())
	})

	t.Run("Internal cause is not exposed", func(t *testing.T) {
		response := httptest.NewRecorder()
		writer.WriteError(context.TODO(), response, 3, myerrors.NewInternalError(fmt.Errorf("dial tcp 10.0.0.7:6379: connection refused")))

		assert.Equal(t, 500, response.Code)
		assert.Equal(t, "internal: internal error", response.Body.String())
		assert.NotContains(t, response.Body.String(), "10.0.0.7")
	})

	t.Run("Text", func(t *testing.T) {
		response := httptest.NewRecorder()
		writer.WriteText(context.TODO(), response, 200, "hello")

		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "hello", response.Body.String())
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("Request id generated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uuider := myuuid.NewMockUUIDer(ctrl)
		uuider.EXPECT().Create().Return("generated-id")

		seen := ""
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = mycontext.RequestID(r.Context())
		}), RequestID(uuider))

		response := httptest.NewRecorder()
		h.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "generated-id", seen)
		assert.Equal(t, "generated-id", response.Header().Get(RequestIDHeader))
	})

	t.Run("Request id propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		uuider := myuuid.NewMockUUIDer(ctrl)

		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), RequestID(uuider))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(RequestIDHeader, "incoming-id")
		response := httptest.NewRecorder()
		h.ServeHTTP(response, request)

		assert.Equal(t, "incoming-id", response.Header().Get(RequestIDHeader))
	})

	t.Run("Recover from panic", func(t *testing.T) {
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("kaboom")
		}), Recover(mylog.New("test")))

		response := httptest.NewRecorder()
		h.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, 500, response.Code)
	})

	t.Run("Chain order", func(t *testing.T) {
		order := []string{}
		mw := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}
		h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}), mw("outer"), mw("inner"))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	})
}
