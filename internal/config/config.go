package config

import (
	"strings"
	"time"

	"github.com/SeakMengs/DocSign/internal/env"
)

type Config struct {
	Port string
	ENV  string
	// Absolute base used for links drawn into documents, e.g. the QR code of the view URL.
	// When empty only relative links are returned and no QR code is drawn.
	PublicBaseURL string
	// Maximum accepted request body in bytes
	MaxUploadSize int64
	Storage       StorageConfig
	Minio         MinioConfig
	Converter     ConverterConfig
	Sign          SignConfig
	RateLimiter   RateLimiterConfig
}

type RateLimiterConfig struct {
	RequestsPerTimeFrame int
	TimeFrame            time.Duration
	Enabled              bool
}

type StorageConfig struct {
	// "local" or "minio"
	Driver   string
	LocalDir string
}

type MinioConfig struct {
	ENDPOINT   string
	ACCESS_KEY string
	SECRET_KEY string
	BUCKET     string
	USE_SSL    bool
}

type ConverterConfig struct {
	Binary  string
	Timeout time.Duration
	// Scratch space for uploads and converter output, each request uses its own sub directory
	WorkDir string
}

type SignConfig struct {
	FontDir    string
	LayoutPath string
	// "append" or "merge"
	DefaultMode string
	TmpDir      string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.ENV, "production")
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func GetConfig() Config {
	return Config{
		Port:          env.GetString("PORT", "1046"),
		ENV:           env.GetString("ENV", "development"),
		PublicBaseURL: strings.TrimRight(env.GetString("PUBLIC_BASE_URL", ""), "/"),
		// 20 MB
		MaxUploadSize: int64(env.GetInt("MAX_UPLOAD_SIZE", 20<<20)),
		Storage: StorageConfig{
			Driver:   env.GetString("STORAGE_DRIVER", "local"),
			LocalDir: env.GetString("STORAGE_LOCAL_DIR", "static/pdfs"),
		},
		Minio: MinioConfig{
			ENDPOINT:   env.GetString("MINIO_ENDPOINT", "127.0.0.1:9000"),
			ACCESS_KEY: env.GetString("MINIO_ACCESS_KEY", ""),
			SECRET_KEY: env.GetString("MINIO_SECRET_KEY", ""),
			BUCKET:     env.GetString("MINIO_BUCKET", "docsign"),
			USE_SSL:    env.GetBool("MINIO_USE_SSL", false),
		},
		Converter: ConverterConfig{
			Binary:  env.GetString("CONVERTER_BINARY", "soffice"),
			Timeout: parseDuration(env.GetString("CONVERTER_TIMEOUT", "2m"), 2*time.Minute),
			WorkDir: env.GetString("CONVERTER_WORK_DIR", "uploads"),
		},
		Sign: SignConfig{
			FontDir:     env.GetString("SIGN_FONT_DIR", "fonts"),
			LayoutPath:  env.GetString("SIGN_LAYOUT_PATH", "layout.toml"),
			DefaultMode: env.GetString("SIGN_DEFAULT_MODE", "append"),
			TmpDir:      env.GetString("SIGN_TMP_DIR", ""),
		},
		// By default if not specified, we allow 5000 requests per minute on all routes
		RateLimiter: RateLimiterConfig{
			RequestsPerTimeFrame: env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 5000),
			TimeFrame:            parseDuration(env.GetString("RATE_LIMIT_TIME_FRAME", "1m"), 60*time.Second),
			Enabled:              env.GetBool("RATE_LIMIT_ENABLED", true),
		},
	}
}
