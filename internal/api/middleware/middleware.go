package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func HandleError(resp *restful.Response, err error, status int) {
	resp.WriteHeaderAndEntity(status, ErrorResponse{Detail: err.Error()})
}

// Logger returns a container filter that tags each request with an id and logs
// its outcome.
func Logger(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		started := time.Now()

		requestID := req.HeaderParameter(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		resp.AddHeader(RequestIDHeader, requestID)

		chain.ProcessFilter(req, resp)

		logger.Info().
			Str("request_id", requestID).
			Str("method", req.Request.Method).
			Str("path", req.Request.URL.Path).
			Int("status", resp.StatusCode()).
			Dur("elapsed", time.Since(started)).
			Msg("HTTP request")
	}
}

// RecoverPanic turns a handler panic into a 500.
func RecoverPanic(logger *zerolog.Logger) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Str("path", req.Request.URL.Path).
					Msg("Handler panicked")
				resp.WriteHeaderAndEntity(http.StatusInternalServerError, ErrorResponse{Detail: "internal server error"})
			}
		}()
		chain.ProcessFilter(req, resp)
	}
}
