package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/icecave/beeline/tenant"
)

// DefaultRedisKeyPrefix is the key prefix used when RedisSource.KeyPrefix is
// empty.
const DefaultRedisKeyPrefix = "beeline:tenant:"

// RedisSource loads tenant configurations from Redis.
//
// Each tenant is stored as a JSON value under "<prefix><hostname>":
//
//	{
//	  "title": "Example Docs",
//	  "description": "Documentation for Example",
//	  "google_font": "Roboto",
//	  "custom_script": "",
//	  "slugs": {"guide": "abcd1234abcd1234abcd1234abcd1234"}
//	}
type RedisSource struct {
	// Client is the Redis client used to read tenant records.
	Client redis.UniversalClient

	// KeyPrefix is prepended to the tenant's domain to form the Redis key.
	KeyPrefix string

	// An optional logger for information about loaded tenants.
	Logger *log.Logger
}

type redisRecord struct {
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	GoogleFont   string            `json:"google_font"`
	CustomScript string            `json:"custom_script"`
	Slugs        map[string]string `json:"slugs"`
}

// Load reads all tenant configurations from Redis.
func (source *RedisSource) Load(ctx context.Context) (map[string]*tenant.Config, error) {
	prefix := source.KeyPrefix
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}

	configs := map[string]*tenant.Config{}
	iterator := source.Client.Scan(ctx, 0, prefix+"*", 0).Iterator()

	for iterator.Next(ctx) {
		key := iterator.Val()
		domain := strings.TrimPrefix(key, prefix)

		value, err := source.Client.Get(ctx, key).Bytes()
		if err != nil {
			return nil, fmt.Errorf("directory: unable to read tenant key %s: %w", key, err)
		}

		var record redisRecord
		if err := json.Unmarshal(value, &record); err != nil {
			return nil, fmt.Errorf("directory: malformed tenant record at %s: %w", key, err)
		}

		configs[domain] = &tenant.Config{
			Domain:       domain,
			SlugToPage:   record.Slugs,
			Title:        record.Title,
			Description:  record.Description,
			GoogleFont:   record.GoogleFont,
			CustomScript: record.CustomScript,
		}

		if source.Logger != nil {
			source.Logger.Printf(
				"directory: Loaded tenant '%s' with %d slug(s) from redis",
				domain,
				len(record.Slugs),
			)
		}
	}

	if err := iterator.Err(); err != nil {
		return nil, fmt.Errorf("directory: unable to scan tenant keys: %w", err)
	}

	return configs, nil
}
