package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Crypto CryptoConfig
	S3     S3Config
	Email  EmailConfig
	App    AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// CryptoConfig holds the envelope encryption key.
type CryptoConfig struct {
	// Key is the base64-encoded 32-byte AES key. Required: there is no
	// built-in default, and Load fails outside development when unset.
	Key string `mapstructure:"key"`
}

// S3Config holds AWS S3 settings for QR image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	QRPrefix      string `mapstructure:"qr_prefix"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string        `mapstructure:"provider"`
	Region      string        `mapstructure:"region"`
	FromAddress string        `mapstructure:"from_address"`
	FromName    string        `mapstructure:"from_name"`
	SendTimeout time.Duration `mapstructure:"send_timeout"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	// PublicBaseURL is the externally reachable base for receipt/invoice
	// links embedded in QR codes and emails.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Load reads configuration from environment variables with the RECIBO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECIBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "recibo")
	v.SetDefault("db.password", "recibo_secret")
	v.SetDefault("db.name", "recibo_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.token_expiry", "24h")
	v.SetDefault("jwt.issuer", "recibo")

	// Crypto: no default key, ever.
	v.SetDefault("crypto.key", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "recibo-qr-codes")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.qr_prefix", "receipt-qr-codes")
	v.SetDefault("s3.upload_timeout", "10s")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@recibo.local")
	v.SetDefault("email.from_name", "Recibo")
	v.SetDefault("email.send_timeout", "15s")

	// App defaults
	v.SetDefault("app.public_base_url", "http://localhost:3000")

	envBindings := map[string]string{
		"server.port":          "RECIBO_SERVER_PORT",
		"server.read_timeout":  "RECIBO_SERVER_READ_TIMEOUT",
		"server.write_timeout": "RECIBO_SERVER_WRITE_TIMEOUT",
		"server.environment":   "RECIBO_SERVER_ENVIRONMENT",
		"db.host":              "RECIBO_DB_HOST",
		"db.port":              "RECIBO_DB_PORT",
		"db.user":              "RECIBO_DB_USER",
		"db.password":          "RECIBO_DB_PASSWORD",
		"db.name":              "RECIBO_DB_NAME",
		"db.sslmode":           "RECIBO_DB_SSLMODE",
		"db.max_open":          "RECIBO_DB_MAX_OPEN",
		"db.max_idle":          "RECIBO_DB_MAX_IDLE",
		"jwt.secret":           "RECIBO_JWT_SECRET",
		"jwt.token_expiry":     "RECIBO_JWT_TOKEN_EXPIRY",
		"jwt.issuer":           "RECIBO_JWT_ISSUER",
		"crypto.key":           "RECIBO_CRYPTO_KEY",
		"s3.region":            "RECIBO_S3_REGION",
		"s3.bucket":            "RECIBO_S3_BUCKET",
		"s3.endpoint":          "RECIBO_S3_ENDPOINT",
		"s3.access_key":        "RECIBO_S3_ACCESS_KEY",
		"s3.secret_key":        "RECIBO_S3_SECRET_KEY",
		"s3.qr_prefix":         "RECIBO_S3_QR_PREFIX",
		"s3.upload_timeout":    "RECIBO_S3_UPLOAD_TIMEOUT",
		"email.provider":       "RECIBO_EMAIL_PROVIDER",
		"email.region":         "RECIBO_EMAIL_REGION",
		"email.from_address":   "RECIBO_EMAIL_FROM_ADDRESS",
		"email.from_name":      "RECIBO_EMAIL_FROM_NAME",
		"email.send_timeout":   "RECIBO_EMAIL_SEND_TIMEOUT",
		"app.public_base_url":  "RECIBO_APP_PUBLIC_BASE_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if RECIBO_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("RECIBO_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.Crypto = CryptoConfig{
		Key: v.GetString("crypto.key"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		QRPrefix:      v.GetString("s3.qr_prefix"),
		UploadTimeout: v.GetDuration("s3.upload_timeout"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		SendTimeout: v.GetDuration("email.send_timeout"),
	}
	cfg.App = AppConfig{
		PublicBaseURL: strings.TrimRight(v.GetString("app.public_base_url"), "/"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate rejects configurations that must not start. The encryption key
// has no fallback value on purpose, in any environment; the JWT secret may
// only be empty in development.
func (c *Config) validate() error {
	var missing []string
	if c.Crypto.Key == "" {
		missing = append(missing, "RECIBO_CRYPTO_KEY")
	}
	if c.JWT.Secret == "" && c.Server.Environment != "development" {
		missing = append(missing, "RECIBO_JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("required configuration missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
