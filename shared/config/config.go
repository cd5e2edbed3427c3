package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Http       Http       `yaml:"http"`
	Log        Log        `yaml:"log"`
	Cors       Cors       `yaml:"cors"`
	Pagination Pagination `yaml:"pagination"`
	Quota      Quota      `yaml:"quota"`
	Burst      Burst      `yaml:"burst"`
	Content    Content    `yaml:"content"`
	QuotaStats QuotaStats `yaml:"quota_stats"`
}

type Http struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	// Secure is set when TLS terminates in front of the service; enables HSTS.
	Secure          bool          `yaml:"secure"`
}

type Log struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins" validate:"required,min=1"`
	MaxAge         int      `yaml:"max_age" validate:"gte=0"`
}

type Pagination struct {
	ThreadsPerPage  int `yaml:"threads_per_page" validate:"gt=0"`
	CommentsPerPage int `yaml:"comments_per_page" validate:"gt=0"`
}

// Quota is the daily post allowance per subject class.
type Quota struct {
	AnonymousPerDay int           `yaml:"anonymous_per_day" validate:"gt=0"`
	UserPerDay      int           `yaml:"user_per_day" validate:"gt=0"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" validate:"gt=0"`
}

// Burst is the short-term per-address request throttle applied to every route.
type Burst struct {
	RPS     float64       `yaml:"rps" validate:"gt=0"`
	Burst   int           `yaml:"burst" validate:"gt=0"`
	IdleTTL time.Duration `yaml:"idle_ttl" validate:"gt=0"`
}

type Content struct {
	MaxTitleLength int  `yaml:"max_title_length" validate:"gt=0"`
	MaxBodyLength  int  `yaml:"max_body_length" validate:"gt=0"`
	RenderMarkdown bool `yaml:"render_markdown"`
}

// QuotaStats enables the redis decision recorder when RedisAddr is set.
type QuotaStats struct {
	RedisAddr string        `yaml:"redis_addr"`
	RedisDB   int           `yaml:"redis_db" validate:"gte=0"`
	Prefix    string        `yaml:"prefix"`
	TTL       time.Duration `yaml:"ttl" validate:"gte=0"`
}

type Private struct {
	RedisPassword string `yaml:"redis_password"`
}

func (s *Config) RedisPassword() string {
	return s.private.RedisPassword
}

// Default returns the configuration used when a yaml file leaves a field out.
func Default() Public {
	return Public{
		Http: Http{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Log: Log{Level: "info"},
		Cors: Cors{
			AllowedOrigins: []string{"http://localhost:5173"},
			MaxAge:         3600,
		},
		Pagination: Pagination{ThreadsPerPage: 25, CommentsPerPage: 50},
		Quota: Quota{
			AnonymousPerDay: 3,
			UserPerDay:      7,
			CleanupInterval: time.Hour,
		},
		Burst: Burst{RPS: 5, Burst: 10, IdleTTL: 15 * time.Minute},
		Content: Content{
			MaxTitleLength: 200,
			MaxBodyLength:  10000,
			RenderMarkdown: true,
		},
		QuotaStats: QuotaStats{Prefix: "quota:stats", TTL: 24 * time.Hour},
	}
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic("can't unmarshal config file " + configPath + ": " + err.Error())
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder on top of
// Default and panics if the result does not validate.
func MustLoad(configFolder string) *Config {
	public := Default()
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, private: private}
	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}

func (s *Config) Validate() error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(s.Public)
}
