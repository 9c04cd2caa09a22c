// Package config は環境変数からアプリケーション設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/gin-contrib/cors"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// サポートするデータベースドライバー
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

const minProductionSecretLen = 16

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// データベース
	DBDriver          string        `env:"DB_DRIVER" envDefault:"sqlite"`
	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"file:app.db?_pragma=foreign_keys(1)"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBAutoMigrate     bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// 認証
	JWTSecretKey      string        `env:"JWT_SECRET_KEY,required"`
	JWTAccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" envDefault:"15m"`
	BcryptCost        int           `env:"BCRYPT_COST" envDefault:"10"`

	// ログ
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// カンマ区切り (例: "http://localhost:3000,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`

	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// IsProduction は本番モードで動作している場合にtrueを返します。
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins はカンマ区切りのオリジン文字列をスライスに変換します。
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// Validate は設定値の整合性を検証します。
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecretKey == "" {
		return errors.New("JWT_SECRET_KEY must not be empty")
	}
	if c.IsProduction() && len(c.JWTSecretKey) < minProductionSecretLen {
		return fmt.Errorf("JWT_SECRET_KEY must be at least %d bytes in production", minProductionSecretLen)
	}
	if c.JWTAccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	// cors.New は不正なオリジンでpanicするため、起動前にここで検出する
	if origins := c.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsConfig := cors.Config{AllowOrigins: origins}
		if err := corsConfig.Validate(); err != nil {
			return fmt.Errorf("invalid CORS_ALLOWED_ORIGINS: %w", err)
		}
	}
	return nil
}

// Load は .env ファイル (存在する場合) と環境変数から設定を読み込みます。
// ファイルが指定されない場合はカレントディレクトリの .env を試みます。
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
