package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Zee-2005/safara-sub000/internal/security/secretbox"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"app_env"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Storage struct {
		Driver string `yaml:"driver"` // memory | mongo | postgres
		Mongo  struct {
			URI      string `yaml:"uri"`
			Database string `yaml:"database"`
		} `yaml:"mongo"`
		Postgres struct {
			DSN string `yaml:"dsn"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Content struct {
		Dir string `yaml:"dir"` // encrypted blob directory
	} `yaml:"content"`

	Security struct {
		// base64(32 bytes); env SAFARA_MASTER_KEY overrides
		MasterKey string `yaml:"master_key"`
	} `yaml:"security"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Upload  struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"upload"`
		Verify struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"verify"`
	} `yaml:"rate"`

	OCR struct {
		Binary   string `yaml:"binary"`
		Language string `yaml:"language"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"ocr"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"` // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	} `yaml:"smtp"`

	Credential struct {
		Issuer     string `yaml:"issuer"`
		SigningKey string `yaml:"signing_key"`
		TTL        string `yaml:"ttl"`
	} `yaml:"credential"`
}

// Load reads the YAML at path, applies defaults and env overrides, and
// validates the result. An empty path loads defaults plus env only.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	// sane defaults
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Mongo.Database == "" {
		c.Storage.Mongo.Database = "safara"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "./data/content"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Rate.Upload.Limit == 0 {
		c.Rate.Upload.Limit = 10
	}
	if c.Rate.Upload.Window == "" {
		c.Rate.Upload.Window = "1m"
	}
	if c.Rate.Verify.Limit == 0 {
		c.Rate.Verify.Limit = 10
	}
	if c.Rate.Verify.Window == "" {
		c.Rate.Verify.Window = "1m"
	}
	if c.OCR.Binary == "" {
		c.OCR.Binary = "tesseract"
	}
	if c.OCR.Language == "" {
		c.OCR.Language = "eng"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
	if c.Credential.Issuer == "" {
		c.Credential.Issuer = "safara"
	}
	if c.Credential.TTL == "" {
		c.Credential.TTL = "8760h" // one year
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if !filepath.IsAbs(c.Content.Dir) && path != "" {
		c.Content.Dir = filepath.Clean(filepath.Join(filepath.Dir(path), c.Content.Dir))
	}
	return &c, nil
}

// MasterKey decodes the configured master key. The server refuses to
// start without a valid 32-byte key.
func (c *Config) MasterKey() ([]byte, error) {
	if strings.TrimSpace(c.Security.MasterKey) == "" {
		return nil, errors.New("config: master key not set (SAFARA_MASTER_KEY)")
	}
	return secretbox.KeyFromBase64(c.Security.MasterKey)
}

// CredentialTTL returns the parsed credential lifetime.
func (c *Config) CredentialTTL() time.Duration {
	d, err := time.ParseDuration(c.Credential.TTL)
	if err != nil {
		return 8760 * time.Hour
	}
	return d
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory":
	case "mongo":
		if strings.TrimSpace(c.Storage.Mongo.URI) == "" {
			return errors.New("config: storage.mongo.uri required for mongo driver")
		}
	case "postgres":
		if strings.TrimSpace(c.Storage.Postgres.DSN) == "" {
			return errors.New("config: storage.postgres.dsn required for postgres driver")
		}
	default:
		return errors.New("config: unknown storage driver " + c.Storage.Driver)
	}
	if c.Cache.Kind == "redis" && strings.TrimSpace(c.Cache.Redis.Addr) == "" {
		return errors.New("config: cache.redis.addr required for redis cache")
	}
	for _, w := range []string{c.Rate.Upload.Window, c.Rate.Verify.Window, c.Credential.TTL} {
		if _, err := time.ParseDuration(w); err != nil {
			return err
		}
	}
	if _, err := c.MasterKey(); err != nil {
		return err
	}
	return nil
}

// ---- env helpers ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}
func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}
func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("MONGO_URI"); ok {
		c.Storage.Mongo.URI = v
	}
	if v, ok := getEnvStr("MONGO_DATABASE"); ok {
		c.Storage.Mongo.Database = v
	}
	if v, ok := getEnvStr("POSTGRES_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}
	if v, ok := getEnvStr("CONTENT_DIR"); ok {
		c.Content.Dir = v
	}
	if v, ok := getEnvStr("SAFARA_MASTER_KEY"); ok {
		c.Security.MasterKey = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvStr("OCR_BINARY"); ok {
		c.OCR.Binary = v
	}
	if v, ok := getEnvStr("OCR_LANGUAGE"); ok {
		c.OCR.Language = v
	}
	if v, ok := getEnvBool("OCR_DISABLED"); ok {
		c.OCR.Disabled = v
	}
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}
	if v, ok := getEnvStr("CREDENTIAL_SIGNING_KEY"); ok {
		c.Credential.SigningKey = v
	}
	if v, ok := getEnvStr("CREDENTIAL_ISSUER"); ok {
		c.Credential.Issuer = v
	}
}
