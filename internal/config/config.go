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
	S3     S3Config
	Log    LogConfig
	CORS   CORSConfig
	Email  EmailConfig
	Report ReportConfig
}

// ReportConfig holds VAT report rendering defaults. Tenant settings override the
// currency symbol and timezone per tenant.
type ReportConfig struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
	TopN           int    `mapstructure:"top_n"`
	CSVBOM         bool   `mapstructure:"csv_bom"`
	ArchivePrefix  string `mapstructure:"archive_prefix"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
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

// JWTConfig holds the settings used to verify bearer tokens issued by the identity service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings for the report archive.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings. Level "debug" adds file:line to every log line.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from environment variables with the VATLEDGER_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VATLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "vatledger")
	v.SetDefault("db.password", "vatledger_secret")
	v.SetDefault("db.name", "vatledger_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "vatledger")

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-2")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-2")
	v.SetDefault("email.from_address", "orders@vatledger.local")
	v.SetDefault("email.from_name", "Orders")

	// Report defaults
	v.SetDefault("report.currency_symbol", "£")
	v.SetDefault("report.timezone", "Europe/London")
	v.SetDefault("report.top_n", 20)
	v.SetDefault("report.csv_bom", true)
	v.SetDefault("report.archive_prefix", "reports")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "VATLEDGER_SERVER_PORT",
		"server.read_timeout":    "VATLEDGER_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "VATLEDGER_SERVER_WRITE_TIMEOUT",
		"server.environment":     "VATLEDGER_SERVER_ENVIRONMENT",
		"db.host":                "VATLEDGER_DB_HOST",
		"db.port":                "VATLEDGER_DB_PORT",
		"db.user":                "VATLEDGER_DB_USER",
		"db.password":            "VATLEDGER_DB_PASSWORD",
		"db.name":                "VATLEDGER_DB_NAME",
		"db.sslmode":             "VATLEDGER_DB_SSLMODE",
		"db.max_open":            "VATLEDGER_DB_MAX_OPEN",
		"db.max_idle":            "VATLEDGER_DB_MAX_IDLE",
		"jwt.secret":             "VATLEDGER_JWT_SECRET",
		"jwt.issuer":             "VATLEDGER_JWT_ISSUER",
		"s3.region":              "VATLEDGER_S3_REGION",
		"s3.bucket":              "VATLEDGER_S3_BUCKET",
		"s3.endpoint":            "VATLEDGER_S3_ENDPOINT",
		"s3.access_key":          "VATLEDGER_S3_ACCESS_KEY",
		"s3.secret_key":          "VATLEDGER_S3_SECRET_KEY",
		"s3.presign_expiry":      "VATLEDGER_S3_PRESIGN_EXPIRY",
		"log.level":              "VATLEDGER_LOG_LEVEL",
		"cors.allowed_origins":   "VATLEDGER_CORS_ALLOWED_ORIGINS",
		"email.provider":         "VATLEDGER_EMAIL_PROVIDER",
		"email.region":           "VATLEDGER_EMAIL_REGION",
		"email.from_address":     "VATLEDGER_EMAIL_FROM_ADDRESS",
		"email.from_name":        "VATLEDGER_EMAIL_FROM_NAME",
		"report.currency_symbol": "VATLEDGER_REPORT_CURRENCY_SYMBOL",
		"report.timezone":        "VATLEDGER_REPORT_TIMEZONE",
		"report.top_n":           "VATLEDGER_REPORT_TOP_N",
		"report.csv_bom":         "VATLEDGER_REPORT_CSV_BOM",
		"report.archive_prefix":  "VATLEDGER_REPORT_ARCHIVE_PREFIX",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if VATLEDGER_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("VATLEDGER_SERVER_PORT") == "" {
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
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level: v.GetString("log.level"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Report = ReportConfig{
		CurrencySymbol: v.GetString("report.currency_symbol"),
		Timezone:       v.GetString("report.timezone"),
		TopN:           v.GetInt("report.top_n"),
		CSVBOM:         v.GetBool("report.csv_bom"),
		ArchivePrefix:  v.GetString("report.archive_prefix"),
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("config: report.timezone %q: %w", cfg.Report.Timezone, err)
	}
	if cfg.Report.TopN <= 0 {
		return nil, fmt.Errorf("config: report.top_n must be positive, got %d", cfg.Report.TopN)
	}

	return cfg, nil
}
