package cmd

import (
	"os"
	"strconv"
	"time"

	"github.com/icecave/beeline/tenant"
)

// DefaultUserAgent is sent on forwarded API requests when no override is
// configured. Some upstream endpoints vary their responses by user agent, so
// a fixed desktop browser string is used instead of whatever the client sent.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_12_6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.163 Safari/537.36"

// Config holds configuration values for commands.
type Config struct {
	Port            string
	TenantPath      string
	RedisAddress    string
	RedisPassword   string
	RedisKeyPrefix  string
	CacheTTL        time.Duration
	CacheSize       int
	UpstreamAccount string
	UpstreamSite    string
	UpstreamDomain  string
	UserAgent       string
	ProxyProtocol   bool
	CheckTimeout    time.Duration
}

// GetConfigFromEnvironment creates Config object based on the shell environment.
func GetConfigFromEnvironment() *Config {
	return &Config{
		Port:            env("PORT", "3000"),
		TenantPath:      env("TENANT_PATH", ""),
		RedisAddress:    env("REDIS_ADDR", ""),
		RedisPassword:   env("REDIS_PASSWORD", ""),
		RedisKeyPrefix:  env("REDIS_KEY_PREFIX", ""),
		CacheTTL:        envDuration("CACHE_TTL", tenant.DefaultCacheTTL),
		CacheSize:       int(envInt("CACHE_SIZE", 1000)),
		UpstreamAccount: env("UPSTREAM_ACCOUNT", ""),
		UpstreamSite:    env("UPSTREAM_SITE", "notion.site"),
		UpstreamDomain:  env("UPSTREAM_DOMAIN", "www.notion.so"),
		UserAgent:       env("UPSTREAM_USER_AGENT", DefaultUserAgent),
		ProxyProtocol:   envBool("PROXY_PROTOCOL", false),
		CheckTimeout:    envDuration("CHECK_TIMEOUT", 500*time.Millisecond),
	}
}

func env(key string, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

func envInt(key string, def int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		i, _ := strconv.ParseInt(value, 10, 64)
		return i
	}

	return def
}

func envBool(key string, def bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		i, _ := strconv.ParseBool(value)
		return i
	}

	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			return def
		}
		return d
	}

	return def
}
