package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "prod"
	defaultConfigDir     = ".loancalc"
	defaultTimeout       = 30 * time.Second
)

type Config struct {
	Env           string        `mapstructure:"app_env"`
	ServerAddress string        `mapstructure:"server_address"`
	ConfigDir     string        `mapstructure:"config_dir"`
	TokenPath     string        `mapstructure:"token_path"`
	EnableTLS     bool          `mapstructure:"enable_tls"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// MustLoad загружает конфигурацию клиента из ~/.loancalc/config.yaml и окружения
func MustLoad() *Config {
	cfg, err := Load(viper.New(), "")
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает configFile (или config.yaml из каталога конфигурации), затем переменные окружения.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("ошибка загрузки .env файла: %w", err)
		}
	}

	v.AutomaticEnv()

	v.SetDefault("app_env", defaultEnv)
	v.SetDefault("server_address", defaultServerAddress)
	v.SetDefault("enable_tls", false)
	v.SetDefault("timeout", defaultTimeout)

	configDir := v.GetString("config_dir")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, defaultConfigDir)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("чтение %s: %w", v.ConfigFileUsed(), err)
		}
	}

	tokenPath := v.GetString("token_path")
	if tokenPath == "" {
		tokenPath = filepath.Join(configDir, "token")
	}

	config := &Config{
		Env:           v.GetString("app_env"),
		ServerAddress: v.GetString("server_address"),
		ConfigDir:     configDir,
		TokenPath:     tokenPath,
		EnableTLS:     v.GetBool("enable_tls"),
		Timeout:       v.GetDuration("timeout"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address не может быть пустым")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout должен быть положительным")
	}
	return nil
}

// BaseURL - адрес сервера со схемой. Адрес уже со схемой используется как есть.
func (c *Config) BaseURL() string {
	if hasScheme(c.ServerAddress) {
		return c.ServerAddress
	}
	if c.EnableTLS {
		return "https://" + c.ServerAddress
	}
	return "http://" + c.ServerAddress
}

func hasScheme(addr string) bool {
	return strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://")
}
