package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Site         SiteConfig         `mapstructure:"site"`
	Store        StoreConfig        `mapstructure:"store"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Chain        ChainConfig        `mapstructure:"chain"`
	Resolver     ResolverConfig     `mapstructure:"resolver"`
	BIP70        BIP70Config        `mapstructure:"bip70"`
	Payment      PaymentConfig      `mapstructure:"payment"`
	StoreForward StoreForwardConfig `mapstructure:"storeforward"`
	PRR          PRRConfig          `mapstructure:"prr"`
	Signer       SignerConfig       `mapstructure:"signer"`
	PRLog        PRLogConfig        `mapstructure:"pr_log"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	Admin        AdminConfig        `mapstructure:"admin"`
	AES          AESConfig          `mapstructure:"aes"`
	Log          LogConfig          `mapstructure:"log"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`
	Jobs         JobsConfig         `mapstructure:"jobs"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SiteConfig is the public host name used to build absolute URLs.
type SiteConfig struct {
	URL string `mapstructure:"url"`
}

// StoreConfig selects the identity record backend: redis or postgres.
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// RedisConfig addresses one server. DB holds records and queues,
// AddrCacheDB the used-address index, LogDB the payment request log.
type RedisConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	AddrCacheDB int    `mapstructure:"addr_cache_db"`
	LogDB       int    `mapstructure:"log_db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// WithDB returns a copy of the config pointing at another logical database.
func (r RedisConfig) WithDB(db int) RedisConfig {
	r.DB = db
	return r
}

type ChainConfig struct {
	Network                   string `mapstructure:"network"` // mainnet, testnet3, regtest, signet
	RPCHost                   string `mapstructure:"rpc_host"`
	RPCUser                   string `mapstructure:"rpc_user"`
	RPCPass                   string `mapstructure:"rpc_pass"`
	DisableTLS                bool   `mapstructure:"disable_tls"`
	CacheBlockheightThreshold int64  `mapstructure:"cache_blockheight_threshold"`
}

type ResolverConfig struct {
	IPBranching           bool `mapstructure:"ip_branching"`
	MaxDerivationAttempts int  `mapstructure:"max_derivation_attempts"`
}

type BIP70Config struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
}

type PaymentConfig struct {
	MaxSize       int           `mapstructure:"max_size"`
	SubmitRetries int           `mapstructure:"submit_retries"`
	SubmitBackoff time.Duration `mapstructure:"submit_backoff"`
	MetaRetention time.Duration `mapstructure:"meta_retention"`
}

type StoreForwardConfig struct {
	PresignedPRLimit int `mapstructure:"presigned_pr_limit"`
	MaxPRSize        int `mapstructure:"max_pr_size"`
}

type PRRConfig struct {
	Expiration       time.Duration `mapstructure:"expiration"`
	ReturnExpiration time.Duration `mapstructure:"return_expiration"`
	NotifyTimeout    time.Duration `mapstructure:"notify_timeout"`
}

// SignerConfig selects local or api signing.
type SignerConfig struct {
	Type        string        `mapstructure:"type"`
	APIEndpoint string        `mapstructure:"api_endpoint"`
	APISecret   string        `mapstructure:"api_secret"`
	APITimeout  time.Duration `mapstructure:"api_timeout"`
}

// PRLogConfig selects where generated payment requests are logged:
// local, redis, api or postgres.
type PRLogConfig struct {
	Type        string `mapstructure:"type"`
	APIEndpoint string `mapstructure:"api_endpoint"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"` // argon2id encoded
	PublicKey    string `mapstructure:"public_key"`    // hex, authorizes /branches
}

type AESConfig struct {
	Key string `mapstructure:"key"` // 32-byte hex-encoded key for AES-256
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

type RateLimitConfig struct {
	Enabled          bool  `mapstructure:"enabled"`
	ResolvePerMinute int64 `mapstructure:"resolve_per_minute"`
	DefaultPerMinute int64 `mapstructure:"default_per_minute"`
}

type JobsConfig struct {
	CacheWorkers int `mapstructure:"cache_workers"`
	CacheBatch   int `mapstructure:"cache_batch"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PRS_.
// Nested keys use underscore: PRS_REDIS_HOST, PRS_CHAIN_RPC_HOST, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("site.url", "localhost:5000")
	v.SetDefault("store.backend", "redis")
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "payment_resolver")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 1)
	v.SetDefault("redis.addr_cache_db", 14)
	v.SetDefault("redis.log_db", 5)
	v.SetDefault("chain.network", "mainnet")
	v.SetDefault("chain.rpc_host", "localhost:8332")
	v.SetDefault("chain.rpc_user", "bitcoinrpc")
	v.SetDefault("chain.rpc_pass", "")
	v.SetDefault("chain.disable_tls", true)
	v.SetDefault("chain.cache_blockheight_threshold", 2)
	v.SetDefault("resolver.ip_branching", false)
	v.SetDefault("resolver.max_derivation_attempts", 1000)
	v.SetDefault("bip70.default_expiration", "900s")
	v.SetDefault("payment.max_size", 50000)
	v.SetDefault("payment.submit_retries", 5)
	v.SetDefault("payment.submit_backoff", "300ms")
	v.SetDefault("payment.meta_retention", "2160h") // 90 days
	v.SetDefault("storeforward.presigned_pr_limit", 100)
	v.SetDefault("storeforward.max_pr_size", 50000)
	v.SetDefault("prr.expiration", "168h")
	v.SetDefault("prr.return_expiration", "168h")
	v.SetDefault("prr.notify_timeout", "10s")
	v.SetDefault("signer.type", "local")
	v.SetDefault("signer.api_endpoint", "")
	v.SetDefault("signer.api_secret", "")
	v.SetDefault("signer.api_timeout", "10s")
	v.SetDefault("pr_log.type", "local")
	v.SetDefault("pr_log.api_endpoint", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "12h")
	v.SetDefault("jwt.issuer", "payment-resolver")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.public_key", "")
	v.SetDefault("aes.key", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.resolve_per_minute", 60)
	v.SetDefault("ratelimit.default_per_minute", 10)
	v.SetDefault("jobs.cache_workers", 4)
	v.SetDefault("jobs.cache_batch", 15)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PRS_REDIS_HOST -> redis.host
	v.SetEnvPrefix("PRS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
