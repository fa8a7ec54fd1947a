package config

import (
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"

	"github.com/totegamma/hl3mural/internal/domain"
)

type Config struct {
	Server  Server  `yaml:"server"`
	Netlify Netlify `yaml:"netlify"`
	Cache   Cache   `yaml:"cache"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
}

type Netlify struct {
	APIBase     string        `yaml:"apiBase"`
	AccessToken string        `yaml:"accessToken"`
	SiteID      string        `yaml:"siteID"`
	DefaultForm string        `yaml:"defaultForm"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"maxRetries"`
}

type Cache struct {
	Backend string        `yaml:"backend"` // none, memory, redis, memcached
	TTL     time.Duration `yaml:"ttl"`
}

const (
	CacheNone      = "none"
	CacheMemory    = "memory"
	CacheRedis     = "redis"
	CacheMemcached = "memcached"
)

func Default() Config {
	return Config{
		Server: Server{
			Listen: ":8000",
		},
		Netlify: Netlify{
			APIBase:     "https://api.netlify.com/api/v1",
			DefaultForm: domain.DefaultFormName,
			Timeout:     10 * time.Second,
			MaxRetries:  3,
		},
		Cache: Cache{
			Backend: CacheNone,
			TTL:     30 * time.Second,
		},
	}
}

// Load reads a yaml config file. An empty path or a missing file yields the
// defaults, so the server can run from environment variables alone.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, errors.Wrap(err, "open config")
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}

	config.fillDefaults()

	switch config.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis, CacheMemcached:
	default:
		return Config{}, errors.Errorf("unknown cache backend %q", config.Cache.Backend)
	}

	return config, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Server.Listen == "" {
		c.Server.Listen = def.Server.Listen
	}
	if c.Netlify.APIBase == "" {
		c.Netlify.APIBase = def.Netlify.APIBase
	}
	if c.Netlify.DefaultForm == "" {
		c.Netlify.DefaultForm = def.Netlify.DefaultForm
	}
	if c.Netlify.Timeout <= 0 {
		c.Netlify.Timeout = def.Netlify.Timeout
	}
	if c.Netlify.MaxRetries < 0 {
		c.Netlify.MaxRetries = 0
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = def.Cache.Backend
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = def.Cache.TTL
	}
}

// EnvCredentials resolves the provider credentials on every call, so a token
// exported after startup is picked up without a restart. Values from the
// environment win over the config file.
type EnvCredentials struct {
	Fallback Netlify
	Getenv   func(string) string
}

func NewEnvCredentials(fallback Netlify) *EnvCredentials {
	return &EnvCredentials{Fallback: fallback, Getenv: os.Getenv}
}

func (e *EnvCredentials) Credentials() domain.Credentials {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cred := domain.Credentials{
		AccessToken: getenv(domain.EnvAccessToken),
		SiteID:      getenv(domain.EnvSiteID),
	}
	if cred.AccessToken == "" {
		cred.AccessToken = e.Fallback.AccessToken
	}
	if cred.SiteID == "" {
		cred.SiteID = e.Fallback.SiteID
	}
	return cred
}
