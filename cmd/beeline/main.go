package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"

	"golang.org/x/net/http2"

	"github.com/go-redis/redis/v8"
	"github.com/icecave/beeline/cmd"
	"github.com/icecave/beeline/directory"
	"github.com/icecave/beeline/frontend"
	"github.com/icecave/beeline/health"
	"github.com/icecave/beeline/proxy"
	"github.com/icecave/beeline/proxyprotocol"
	"github.com/icecave/beeline/tenant"
)

func main() {
	config := cmd.GetConfigFromEnvironment()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	if config.UpstreamAccount == "" {
		logger.Fatalln("UPSTREAM_ACCOUNT must be set")
	}

	source := directorySource(config, logger)

	configs, err := source.Load(context.Background())
	if err != nil {
		logger.Fatalln(err)
	}

	logger.Printf("Loaded %d tenant(s)", len(configs))

	cachingLocator := &tenant.Cache{
		Inner:   tenant.StaticLocator(configs),
		TTL:     config.CacheTTL,
		MaxSize: config.CacheSize,
		Logger:  logger,
	}

	forwarder := &proxy.Forwarder{
		Client: &http.Client{
			Transport: upstreamTransport(logger),
		},
		Upstream: proxy.Upstream{
			Account:      config.UpstreamAccount,
			Site:         config.UpstreamSite,
			PublicDomain: config.UpstreamDomain,
			UserAgent:    config.UserAgent,
		},
	}

	server := http.Server{
		Addr: ":" + config.Port,
		Handler: &frontend.Handler{
			Proxy: &proxy.Handler{
				Locator:   cachingLocator,
				Forwarder: forwarder,
				Logger:    logger,
			},
			HealthCheck: &health.HTTPHandler{
				Checker: &health.DirectoryChecker{
					Source: source,
				},
				Logger: logger,
			},
			Logger: logger,
		},
		ErrorLog: logger,
	}

	listener, err := net.Listen("tcp", ":"+config.Port)
	if err != nil {
		logger.Fatalln(err)
	}

	if config.ProxyProtocol {
		listener = proxyprotocol.NewListener(listener)
	}

	logger.Printf("Listening on port %s", config.Port)

	err = server.Serve(listener)
	if err != nil {
		logger.Fatalln(err)
	}
}

func directorySource(config *cmd.Config, logger *log.Logger) directory.Source {
	var sources directory.MultiSource

	if config.TenantPath != "" {
		sources = append(sources, &directory.FileSource{
			Path:   config.TenantPath,
			Logger: logger,
		})
	}

	if config.RedisAddress != "" {
		sources = append(sources, &directory.RedisSource{
			Client: redis.NewClient(&redis.Options{
				Addr:     config.RedisAddress,
				Password: config.RedisPassword,
			}),
			KeyPrefix: config.RedisKeyPrefix,
			Logger:    logger,
		})
	}

	if len(sources) == 0 {
		logger.Fatalln("at least one of TENANT_PATH or REDIS_ADDR must be set")
	}

	return sources
}

func upstreamTransport(logger *log.Logger) *http.Transport {
	transport := &http.Transport{
		Proxy:                 http.DefaultTransport.(*http.Transport).Proxy,
		DialContext:           http.DefaultTransport.(*http.Transport).DialContext,
		MaxIdleConns:          http.DefaultTransport.(*http.Transport).MaxIdleConns,
		IdleConnTimeout:       http.DefaultTransport.(*http.Transport).IdleConnTimeout,
		TLSHandshakeTimeout:   http.DefaultTransport.(*http.Transport).TLSHandshakeTimeout,
		ExpectContinueTimeout: http.DefaultTransport.(*http.Transport).ExpectContinueTimeout,
	}

	if err := http2.ConfigureTransport(transport); err != nil {
		logger.Fatalln(err)
	}

	return transport
}
