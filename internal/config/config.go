package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	Server      struct {
		Port        int      `mapstructure:"port"`
		CORSOrigins []string `mapstructure:"corsOrigins"`
	} `mapstructure:"server"`
	Database struct {
		DSN         string `mapstructure:"dsn"`
		AutoMigrate bool   `mapstructure:"autoMigrate"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret  string        `mapstructure:"jwtSecret"`
		TokenTTL   time.Duration `mapstructure:"tokenTTL"`
		AdminToken string        `mapstructure:"adminToken"` // empty = open gate (dev mode)
	} `mapstructure:"auth"`
	DefaultAgent struct {
		FirstName string `mapstructure:"firstName"`
		LastName  string `mapstructure:"lastName"`
		Phone     string `mapstructure:"phone"`
		Email     string `mapstructure:"email"`
		Login     string `mapstructure:"login"`
		Password  string `mapstructure:"password"`
	} `mapstructure:"defaultAgent"`
	AI struct {
		BaseURL     string        `mapstructure:"baseURL"`
		Model       string        `mapstructure:"model"`
		APIKey      string        `mapstructure:"apiKey"`
		Timeout     time.Duration `mapstructure:"timeout"`
		Temperature float64       `mapstructure:"temperature"`
		MaxTokens   int           `mapstructure:"maxTokens"`
	} `mapstructure:"ai"`
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.corsOrigins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("database.dsn", "crm.db")
	v.SetDefault("database.autoMigrate", true)
	v.SetDefault("auth.tokenTTL", 24*time.Hour)
	v.SetDefault("defaultAgent.firstName", "Админ")
	v.SetDefault("defaultAgent.lastName", "CRM")
	v.SetDefault("defaultAgent.phone", "+70000000000")
	v.SetDefault("defaultAgent.login", "admin")
	v.SetDefault("defaultAgent.password", "admin")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.maxTokens", 1000)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./internal/config")

	if err := v.ReadInConfig(); err != nil {
		// конфиг-файл опционален, env-переменных достаточно
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v, Config{})

	// legacy env names take priority
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		v.Set("database.dsn", dsn)
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		v.Set("auth.jwtSecret", secret)
	}
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		v.Set("auth.adminToken", token)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		v.Set("logLevel", level)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		path := append(parts, tag)
		key := strings.Join(path, ".")

		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		_ = v.BindEnv(key)
	}
}
