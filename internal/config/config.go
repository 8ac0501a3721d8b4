package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	JWTSecret   string
	CORSOrigins []string
}

// DatabaseURL renders the postgres connection string for the pool.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Load reads stride.yaml (configs/ or cwd) with environment overrides;
// missing config file falls back to defaults and env vars.
func Load() (*Config, error) {
	viper.SetConfigName("stride")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	viper.AddConfigPath(".")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "stride")
	viper.SetDefault("database.password", "stride_dev_password")
	viper.SetDefault("database.name", "stride")
	viper.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	viper.SetDefault("server.cors_origins", []string{"http://localhost:3000"})

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return &Config{
		ServerPort:  viper.GetString("server.port"),
		DBHost:      viper.GetString("database.host"),
		DBPort:      viper.GetString("database.port"),
		DBUser:      viper.GetString("database.user"),
		DBPassword:  viper.GetString("database.password"),
		DBName:      viper.GetString("database.name"),
		JWTSecret:   viper.GetString("auth.jwt_secret"),
		CORSOrigins: viper.GetStringSlice("server.cors_origins"),
	}, nil
}
