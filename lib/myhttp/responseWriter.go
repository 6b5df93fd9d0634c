package myhttp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MarcGrol/shopauth/lib/myerrors"
	"github.com/MarcGrol/shopauth/lib/mylog"
)

type ResponseWriter interface {
	WriteError(c context.Context, w http.ResponseWriter, errorCode int, err error)
	WriteText(c context.Context, w http.ResponseWriter, httpStatus int, text string)
}

func NewWriter(logger mylog.Logger) ResponseWriter {
	return &responseWriter{
		logger: logger,
	}
}

type responseWriter struct {
	logger mylog.Logger
}

// WriteError renders every failure as "<kind>: <detail>" in plain text. Internal causes are only logged.
func (rw responseWriter) WriteError(c context.Context, w http.ResponseWriter, errorCode int, err error) {
	httpStatus := myerrors.GetHTTPStatus(err)
	rw.logger.Log(c, "", mylog.SeverityWarn, "Error response: http-status:%d, error-code:%d, error-msg:%s", httpStatus, errorCode, err)
	rw.write(w, httpStatus, myerrors.PublicMessage(err))
}

func (rw responseWriter) WriteText(c context.Context, w http.ResponseWriter, httpStatus int, text string) {
	rw.logger.Log(c, "", mylog.SeverityInfo, "Success response: http-status:%d", httpStatus)
	rw.write(w, httpStatus, text)
}

func (rw responseWriter) write(w http.ResponseWriter, httpStatus int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpStatus)
	_, _ = fmt.Fprint(w, text)
}
