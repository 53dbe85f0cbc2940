package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Env       string
	DB        db
	Server    server
	Session   session
	Cache     cache
	MinIO     minio
	RateLimit rateLimit
}

type db struct {
	Driver      string `env:"DB_DRIVER"`
	DatabaseURI string `env:"DATABASE_URI"`
}

type server struct {
	RunAddress  string   `env:"RUN_ADDRESS"`
	CORSOrigins []string `env:"CORS_ORIGINS"`
	// TrustProxy - брать адрес клиента из X-Forwarded-For/X-Real-IP.
	// Включать только за своим прокси, иначе заголовок подделывается.
	TrustProxy bool `env:"TRUST_PROXY"`
}

type session struct {
	TTL time.Duration `env:"SESSION_TTL"`
}

type cache struct {
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"`
	TTL           time.Duration `env:"CACHE_TTL"`
}

type minio struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET"`
	UseSSL    bool   `env:"MINIO_USE_SSL"`
}

type rateLimit struct {
	RPS   float64 `env:"RATE_LIMIT_RPS"`
	Burst int     `env:"RATE_LIMIT_BURST"`
}

// MustLoad читает .env (если есть) и переменные окружения.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	return load(viper.New())
}

func load(v *viper.Viper) *Config {
	v.AutomaticEnv()
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("run_address", ":8080")
	v.SetDefault("db_driver", DriverSQLite)
	v.SetDefault("database_uri", "loancalc.db")
	v.SetDefault("session_ttl", 24*time.Hour)
	v.SetDefault("cache_ttl", time.Hour)
	v.SetDefault("minio_bucket", "loancalc")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("trust_proxy", false)
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)

	config := Config{
		Env: v.GetString("app_env"),
		DB: db{
			Driver:      strings.ToLower(v.GetString("db_driver")),
			DatabaseURI: v.GetString("database_uri"),
		},
		Server: server{
			RunAddress:  v.GetString("run_address"),
			CORSOrigins: splitList(v.GetString("cors_origins")),
			TrustProxy:  v.GetBool("trust_proxy"),
		},
		Session: session{TTL: v.GetDuration("session_ttl")},
		Cache: cache{
			RedisAddr:     v.GetString("redis_addr"),
			RedisPassword: v.GetString("redis_password"),
			RedisDB:       v.GetInt("redis_db"),
			TTL:           v.GetDuration("cache_ttl"),
		},
		MinIO: minio{
			Endpoint:  v.GetString("minio_endpoint"),
			AccessKey: v.GetString("minio_access_key"),
			SecretKey: v.GetString("minio_secret_key"),
			Bucket:    v.GetString("minio_bucket"),
			UseSSL:    v.GetBool("minio_use_ssl"),
		},
		RateLimit: rateLimit{
			RPS:   v.GetFloat64("rate_limit_rps"),
			Burst: v.GetInt("rate_limit_burst"),
		},
	}

	if config.DB.Driver == "postgresql" {
		config.DB.Driver = DriverPostgres
	}

	return &config
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
