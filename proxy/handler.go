package proxy

import (
	"fmt"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/icecave/beeline/name"
	"github.com/icecave/beeline/rewrite"
	"github.com/icecave/beeline/statuspage"
	"github.com/icecave/beeline/tenant"
)

// Handler is the proxy's main http.Handler. It resolves the tenant for the
// request's hostname, classifies the request and dispatches it to the
// matching forwarding or synthetic-response strategy.
type Handler struct {
	Locator          tenant.Locator
	Forwarder        *Forwarder
	StatusPageWriter statuspage.Writer
	Logger           *log.Logger
}

// ServeHTTP serves the request on behalf of the tenant it resolves to.
func (handler *Handler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	logContext := &LogContext{Logger: handler.Logger, Request: request}
	logContext.Metrics.Start()

	err := handler.forward(writer, request, logContext)

	// If there was an error and no response has been sent, send an error page.
	if err != nil && logContext.StatusCode == 0 {
		handler.statusPage(writer, request, logContext, err)
	}

	logContext.Log(err)
}

func (handler *Handler) forward(
	writer http.ResponseWriter,
	request *http.Request,
	logContext *LogContext,
) error {
	host, err := name.FromHTTP(request)
	if err != nil {
		return statuspage.Error{
			Inner:      err,
			StatusCode: http.StatusInternalServerError,
			Message:    "No tenant is configured for this domain.",
		}
	}

	config := handler.Locator.Locate(request.Context(), host)
	if config == nil {
		return statuspage.Error{
			Inner:      fmt.Errorf("no tenant configured for domain '%s'", host.Key),
			StatusCode: http.StatusInternalServerError,
			Message:    "No tenant is configured for this domain.",
		}
	}

	logContext.TenantDomain = config.Domain

	strategy, pageID := Classify(request.Method, request.URL.Path, config)
	logContext.Strategy = strategy

	headers := writer.Header()
	headers.Set("Access-Control-Allow-Origin", "*")

	switch strategy {
	case CorsPreflight:
		writeCorsPreflightHeaders(headers)
		return handler.respond(writer, logContext, http.StatusOK, nil)

	case RobotsTxt:
		headers.Set("Content-Type", "text/plain")
		return handler.respond(writer, logContext, http.StatusOK, []byte(robotsTxt(config)))

	case Sitemap:
		headers.Set("Content-Type", "application/xml")
		return handler.respond(writer, logContext, http.StatusOK, []byte(sitemapXML(config)))

	case JsAsset:
		text, err := handler.Forwarder.FetchJS(request, config)
		if err != nil {
			return err
		}

		headers.Set("Content-Type", "application/javascript")
		return handler.respond(writer, logContext, http.StatusOK, []byte(text))

	case APICall:
		statusCode, body, err := handler.Forwarder.ForwardAPI(request)
		if err != nil {
			return err
		}

		headers.Set("Content-Type", "application/json")
		return handler.respond(writer, logContext, statusCode, body)

	case SlugRedirect:
		// The redirect lands on the upstream's page-ID path; the injected
		// client script converts it back to the slug once the page loads.
		headers.Set("Location", "https://"+config.Domain+"/"+pageID)
		return handler.respond(writer, logContext, http.StatusMovedPermanently, nil)

	case UnknownPageRedirect:
		headers.Set("Location", "https://"+config.Domain)
		return handler.respond(writer, logContext, http.StatusMovedPermanently, nil)

	default:
		return handler.passthrough(writer, request, logContext, config)
	}
}

func (handler *Handler) passthrough(
	writer http.ResponseWriter,
	request *http.Request,
	logContext *LogContext,
	config *tenant.Config,
) error {
	response, err := handler.Forwarder.ForwardHTML(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return upstreamError(err)
	}

	rewriter := &rewrite.Rewriter{
		Tenant:       config,
		UpstreamSite: handler.Forwarder.Upstream.Site,
	}

	rewritten, err := rewriter.Rewrite(string(body))
	if err != nil {
		return statuspage.Error{
			Inner:      err,
			StatusCode: http.StatusInternalServerError,
			Message:    "The requested page could not be rewritten.",
		}
	}

	copyResponseHeaders(writer.Header(), response.Header)

	return handler.respond(writer, logContext, response.StatusCode, []byte(rewritten))
}

func (handler *Handler) respond(
	writer http.ResponseWriter,
	logContext *LogContext,
	statusCode int,
	body []byte,
) error {
	logContext.StatusCode = statusCode
	logContext.Metrics.FirstByteSent()
	defer logContext.Metrics.LastByteSent()

	writer.WriteHeader(statusCode)

	if len(body) == 0 {
		return nil
	}

	size, err := writer.Write(body)
	logContext.Metrics.BytesOut += int64(size)

	return err
}

func (handler *Handler) statusPage(
	writer http.ResponseWriter,
	request *http.Request,
	logContext *LogContext,
	err error,
) {
	statusWriter := handler.StatusPageWriter
	if statusWriter == nil {
		statusWriter = statuspage.DefaultWriter
	}

	logContext.Metrics.FirstByteSent()
	defer logContext.Metrics.LastByteSent()

	logContext.StatusCode, logContext.Metrics.BytesOut, _ = statusWriter.WriteError(
		writer,
		request,
		err,
	)
}
