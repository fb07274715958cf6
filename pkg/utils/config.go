package utils

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Remote   RemoteConfig
	Store    StoreConfig
	JWT      JWTConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name    string
	Debug   bool
	LogPath string
}

// RemoteConfig locates the authoritative record store the client mirrors.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
}

// StoreConfig configures the record store dev server.
type StoreConfig struct {
	Port    string
	Backend string // "memory" or "postgres"
	APIKey  string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "covid-booking")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("API_BASE_URL", "http://localhost:8080/api/v2")
	viper.SetDefault("STORE_PORT", "8080")
	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("DB_MAX_CONNS", 10)

	if err := viper.ReadInConfig(); err != nil {
		// The .env file is optional; environment variables still apply.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Remote: RemoteConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			APIKey:  viper.GetString("API_KEY"),
		},
		Store: StoreConfig{
			Port:    viper.GetString("STORE_PORT"),
			Backend: viper.GetString("STORE_BACKEND"),
			APIKey:  viper.GetString("API_KEY"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
	}

	return config, nil
}
