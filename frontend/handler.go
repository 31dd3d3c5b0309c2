package frontend

import (
	"log"
	"net/http"
)

// Handler provides the main http.Handler implementation. It intercepts
// health-check probes before they reach the proxy, so that a probe is never
// mistaken for a tenant page request.
type Handler struct {
	Proxy       http.Handler
	HealthCheck ConditionalHandler
	Logger      *log.Logger
}

func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if handler.HealthCheck != nil && handler.HealthCheck.CanHandle(request) {
		handler.HealthCheck.ServeHTTP(writer, request)
	} else {
		handler.Proxy.ServeHTTP(writer, request)
	}
}
