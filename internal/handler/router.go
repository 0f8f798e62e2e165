package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter exposes the API over plain HTTP for local runs. Request bodies
// larger than maxBodyBytes are rejected with 413.
func NewRouter(api *API, maxBodyBytes int64) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	serve := proxy(api, maxBodyBytes)
	r.Get(healthPath, serve)
	r.Post(sessionPath, serve)
	r.Get(sessionPath+"/{sessionID}", serve)
	r.NotFound(serve)
	r.MethodNotAllowed(serve)

	return r
}

func proxy(api *API, maxBodyBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeResponse(w, newErrorResponse(http.StatusRequestEntityTooLarge, "request body too large"))
				return
			}
			writeResponse(w, newErrorResponse(http.StatusBadRequest, "failed to read request body"))
			return
		}

		req := events.APIGatewayProxyRequest{
			Path:       r.URL.Path,
			HTTPMethod: r.Method,
			Body:       string(body),
			Headers:    make(map[string]string, len(r.Header)),
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID: middleware.GetReqID(r.Context()),
			},
		}
		for name := range r.Header {
			req.Headers[name] = r.Header.Get(name)
		}

		resp, err := api.Handle(r.Context(), req)
		if err != nil {
			writeResponse(w, internalError("internal error"))
			return
		}
		writeResponse(w, resp)
	}
}

func writeResponse(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for name, value := range resp.Headers {
		w.Header().Set(name, value)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
