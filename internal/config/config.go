// Package config defines the gateway's command line flags, their defaults and validation.
// Every flag can also be set through a TONRPC_ prefixed environment variable, e.g.
// --node-addr through TONRPC_NODE_ADDR. Flags given on the command line win.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type CacheMode string

const (
	CacheNone   CacheMode = "none"
	CacheMemory CacheMode = "memory"
	CacheRedis  CacheMode = "redis"
)

const (
	ServerAddrKey       = "server-addr"
	NodeAddrKey         = "node-addr"
	APIKeyKey           = "api-key"
	RequestTimeoutKey   = "request-timeout"
	MaxStreamsKey       = "max-streams"
	MaxBodyBytesKey     = "max-body-bytes"
	PageSizeKey         = "page-size"
	UpstreamTimeoutKey  = "upstream-timeout"
	UpstreamRPSKey      = "upstream-rps"
	UpstreamBurstKey    = "upstream-burst"
	RetryMaxElapsedKey  = "retry-max-elapsed"
	HeadPollIntervalKey = "head-poll-interval"
	MaxHeadStalenessKey = "max-head-staleness"
	CacheKey            = "cache"
	CacheMemSizeKey     = "cache-mem-size"
	RedisAddrKey        = "redis-addr"
	RedisPasswordKey    = "redis-password"
	RedisDBKey          = "redis-db"
	RedisTTLKey         = "redis-ttl"
	VerboseKey          = "v"

	envPrefix = "TONRPC_"
)

const (
	DefaultServerAddr       = "localhost:8080"
	DefaultNodeAddr         = "https://toncenter.com/api/v2/jsonRPC"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultMaxStreams       = 64
	DefaultMaxBodyBytes     = 1 << 20
	DefaultPageSize         = 30
	DefaultUpstreamTimeout  = 10 * time.Second
	DefaultUpstreamRPS      = 10.0
	DefaultUpstreamBurst    = 10
	DefaultRetryMaxElapsed  = 3 * time.Second
	DefaultHeadPollInterval = 5 * time.Second
	DefaultMaxHeadStaleness = time.Minute
	DefaultCacheMemSize     = 10_000
	DefaultRedisAddr        = "127.0.0.1:6379"
	DefaultRedisTTL         = time.Hour
)

type Config struct {
	ServerAddr       string
	NodeAddr         string
	APIKey           string
	RequestTimeout   time.Duration
	MaxStreams       int64
	MaxBodyBytes     int64
	PageSize         int
	UpstreamTimeout  time.Duration
	UpstreamRPS      float64
	UpstreamBurst    int
	RetryMaxElapsed  time.Duration
	HeadPollInterval time.Duration
	MaxHeadStaleness time.Duration
	Cache            CacheMode
	CacheMemSize     int
	Redis            Redis
	Verbose          bool
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().String(ServerAddrKey, DefaultServerAddr, "Addr to serve the json-rpc, metrics and health endpoints on")
	cmd.Flags().String(NodeAddrKey, DefaultNodeAddr, "The toncenter compatible json-rpc upstream to forward calls to")
	cmd.Flags().String(APIKeyKey, "", "API key sent to the upstream as X-API-Key")
	cmd.Flags().Duration(RequestTimeoutKey, DefaultRequestTimeout, "Deadline for serving a single request")
	cmd.Flags().Int64(MaxStreamsKey, DefaultMaxStreams, "Max number of transaction streams consumed at once")
	cmd.Flags().Int64(MaxBodyBytesKey, DefaultMaxBodyBytes, "Max size of a request body in bytes")
	cmd.Flags().Int(PageSizeKey, DefaultPageSize, "Number of transactions requested per upstream page")
	cmd.Flags().Duration(UpstreamTimeoutKey, DefaultUpstreamTimeout, "Timeout of a single upstream http request")
	cmd.Flags().Float64(UpstreamRPSKey, DefaultUpstreamRPS, "Max upstream requests per second, 0 disables limiting")
	cmd.Flags().Int(UpstreamBurstKey, DefaultUpstreamBurst, "Burst size of the upstream rate limiter")
	cmd.Flags().Duration(RetryMaxElapsedKey, DefaultRetryMaxElapsed, "Max time spent retrying a failed upstream request")
	cmd.Flags().Duration(HeadPollIntervalKey, DefaultHeadPollInterval, "Masterchain head polling interval")
	cmd.Flags().Duration(MaxHeadStalenessKey, DefaultMaxHeadStaleness, "Age of the last head after which the gateway reports unhealthy")
	cmd.Flags().String(CacheKey, string(CacheNone), "Cache for immutable block lookups: none, memory or redis")
	cmd.Flags().Int(CacheMemSizeKey, DefaultCacheMemSize, "Number of entries kept by the memory cache")
	cmd.Flags().String(RedisAddrKey, DefaultRedisAddr, "Redis addr used by the redis cache")
	cmd.Flags().String(RedisPasswordKey, "", "Redis password")
	cmd.Flags().Int(RedisDBKey, 0, "Redis database")
	cmd.Flags().Duration(RedisTTLKey, DefaultRedisTTL, "Time to live of redis cache entries")
	cmd.Flags().BoolP(VerboseKey, VerboseKey, false, "Verbose output")
}

var (
	ErrServerAddrRequired     = errors.New("--server-addr is required")
	ErrNodeAddrRequired       = errors.New("--node-addr is required")
	ErrRequestTimeoutTooSmall = errors.New("--request-timeout must be positive")
	ErrMaxStreamsTooSmall     = errors.New("--max-streams must be at least 1")
	ErrMaxBodyBytesTooSmall   = errors.New("--max-body-bytes must be positive")
	ErrPageSizeOutOfRange     = errors.New("--page-size must be between 1 and 256")
	ErrUpstreamRPSNegative    = errors.New("--upstream-rps cannot be negative")
	ErrHeadPollTooSmall       = errors.New("--head-poll-interval cannot be less than 1 second")
	ErrUnknownCacheMode       = errors.New("--cache must be one of none, memory or redis")
	ErrRedisAddrRequired      = errors.New("--redis-addr is required when --cache=redis")
)

func (c *Config) Validate() error {
	switch {
	case c.ServerAddr == "":
		return ErrServerAddrRequired
	case c.NodeAddr == "":
		return ErrNodeAddrRequired
	case c.RequestTimeout <= 0:
		return ErrRequestTimeoutTooSmall
	case c.MaxStreams < 1:
		return ErrMaxStreamsTooSmall
	case c.MaxBodyBytes <= 0:
		return ErrMaxBodyBytesTooSmall
	case c.PageSize < 1 || c.PageSize > 256:
		return ErrPageSizeOutOfRange
	case c.UpstreamRPS < 0:
		return ErrUpstreamRPSNegative
	case c.HeadPollInterval < time.Second:
		return ErrHeadPollTooSmall
	}

	switch c.Cache {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Redis.Addr == "" {
			return ErrRedisAddrRequired
		}
	default:
		return fmt.Errorf("%w, got %q", ErrUnknownCacheMode, c.Cache)
	}

	return nil
}

// Load reads the config from flags, falling back to the environment for flags that
// were not set on the command line.
func Load(flags *pflag.FlagSet) (*Config, error) {
	var envErr error
	flags.VisitAll(func(f *pflag.Flag) {
		if envErr != nil || f.Changed {
			return
		}
		name := envPrefix + strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		val, ok := os.LookupEnv(name)
		if !ok {
			return
		}
		err := flags.Set(f.Name, val)
		if err != nil {
			envErr = fmt.Errorf("invalid value %q for %s: %w", val, name, err)
		}
	})
	if envErr != nil {
		return nil, envErr
	}

	var (
		c     Config
		cache string
		errs  []error
	)
	get := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	c.ServerAddr, err = flags.GetString(ServerAddrKey)
	get(err)
	c.NodeAddr, err = flags.GetString(NodeAddrKey)
	get(err)
	c.APIKey, err = flags.GetString(APIKeyKey)
	get(err)
	cache, err = flags.GetString(CacheKey)
	get(err)
	c.Redis.Addr, err = flags.GetString(RedisAddrKey)
	get(err)
	c.Redis.Password, err = flags.GetString(RedisPasswordKey)
	get(err)
	c.RequestTimeout, err = flags.GetDuration(RequestTimeoutKey)
	get(err)
	c.MaxStreams, err = flags.GetInt64(MaxStreamsKey)
	get(err)
	c.MaxBodyBytes, err = flags.GetInt64(MaxBodyBytesKey)
	get(err)
	c.PageSize, err = flags.GetInt(PageSizeKey)
	get(err)
	c.UpstreamTimeout, err = flags.GetDuration(UpstreamTimeoutKey)
	get(err)
	c.UpstreamRPS, err = flags.GetFloat64(UpstreamRPSKey)
	get(err)
	c.UpstreamBurst, err = flags.GetInt(UpstreamBurstKey)
	get(err)
	c.RetryMaxElapsed, err = flags.GetDuration(RetryMaxElapsedKey)
	get(err)
	c.HeadPollInterval, err = flags.GetDuration(HeadPollIntervalKey)
	get(err)
	c.MaxHeadStaleness, err = flags.GetDuration(MaxHeadStalenessKey)
	get(err)
	c.CacheMemSize, err = flags.GetInt(CacheMemSizeKey)
	get(err)
	c.Redis.DB, err = flags.GetInt(RedisDBKey)
	get(err)
	c.Redis.TTL, err = flags.GetDuration(RedisTTLKey)
	get(err)
	c.Verbose, err = flags.GetBool(VerboseKey)
	get(err)

	err = errors.Join(errs...)
	if err != nil {
		return nil, fmt.Errorf("could not read flags: %w", err)
	}

	c.Cache = CacheMode(strings.ToLower(strings.TrimSpace(cache)))
	return &c, nil
}
