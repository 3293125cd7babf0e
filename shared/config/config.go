package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/desichan/desichan/shared/domain"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds non-secret settings, read from public.yaml.
type Public struct {
	Log    Log           `yaml:"log"`
	HTTP   HTTP          `yaml:"http" validate:"required"`
	JwtTTL time.Duration `yaml:"jwt_ttl" validate:"required"`

	PostsPerPage      int `yaml:"posts_per_page" validate:"required,min=1"`
	SearchLimit       int `yaml:"search_limit" validate:"required,min=1"`
	UserActivityLimit int `yaml:"user_activity_limit"`

	Media  Media          `yaml:"media" validate:"required"`
	Boards []domain.Board `yaml:"boards" validate:"required,min=1,dive"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type HTTP struct {
	Addr            string        `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	SecureCookies   bool          `yaml:"secure_cookies"`
	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	TrustProxy bool `yaml:"trust_proxy"`
}

type Media struct {
	Backend               string   `yaml:"backend" validate:"required,oneof=fs minio"`
	Root                  string   `yaml:"root" validate:"required_if=Backend fs"`
	URLPrefix             string   `yaml:"url_prefix"`
	MaxSizeBytes          int64    `yaml:"max_size_bytes" validate:"required,min=1"`
	AllowedImageMimeTypes []string `yaml:"allowed_image_mime_types" validate:"required,min=1"`
	AllowedVideoMimeTypes []string `yaml:"allowed_video_mime_types"`
}

// Private holds secrets, read from the environment (optionally seeded from a .env file next to public.yaml).
type Private struct {
	JwtKey string `env:"JWT_KEY" env-required:"true"`
	Pg     Pg
	Minio  Minio
}

type Pg struct {
	Host     string `env:"PG_HOST" env-default:"localhost"`
	Port     int    `env:"PG_PORT" env-default:"5432"`
	User     string `env:"PG_USER" env-default:"desichan"`
	Password string `env:"PG_PASSWORD"`
	Dbname   string `env:"PG_DBNAME" env-default:"desichan"`
}

type Minio struct {
	Endpoint  string `env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" env-default:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" env-default:"minioadmin"`
	Bucket    string `env:"MINIO_BUCKET" env-default:"media"`
	UseSSL    bool   `env:"MINIO_USE_SSL" env-default:"false"`
	// PublicURL is the base clients use to fetch objects, e.g. https://cdn.example.com
	PublicURL string `env:"MINIO_PUBLIC_URL"`
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file: %v", err))
	}
}

func mustLoadEnv(envPath string, output *Private) {
	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(fmt.Sprintf("can't read env file: %v", err))
	}
	if err := cleanenv.ReadEnv(output); err != nil {
		panic(fmt.Sprintf("can't read private config from env: %v", err))
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&public); err != nil {
		panic(fmt.Sprintf("invalid public config: %v", err))
	}
	public.setDefaults()

	var private Private
	mustLoadEnv(path.Join(configFolder, ".env"), &private)

	return &Config{public, private}
}

func (p *Public) setDefaults() {
	if p.HTTP.ReadTimeout == 0 {
		p.HTTP.ReadTimeout = 10 * time.Second
	}
	if p.HTTP.WriteTimeout == 0 {
		p.HTTP.WriteTimeout = 30 * time.Second
	}
	if p.HTTP.ShutdownTimeout == 0 {
		p.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if p.UserActivityLimit == 0 {
		p.UserActivityLimit = 50
	}
	if p.Media.URLPrefix == "" && p.Media.Backend == "fs" {
		p.Media.URLPrefix = "/media"
	}
}
