package file

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures a Storage backend.
type Config struct {
	Driver   string `env:"STORAGE_DRIVER" envDefault:"local"`
	LocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"./artifacts"`
	BaseURL  string `env:"STORAGE_BASE_URL" envDefault:"/artifacts/"`

	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"S3_SECRET_KEY"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3BaseURL        string `env:"S3_BASE_URL"`
	S3ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`

	S3UploadTimeout time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"30s"`
	S3MaxAttempts   int           `env:"S3_MAX_ATTEMPTS" envDefault:"3"`
	// Some S3-compatible services reject the SDK's default request checksums.
	S3ChecksumWhenRequired bool `env:"S3_CHECKSUM_WHEN_REQUIRED" envDefault:"false"`
}

// S3Options translates the tuning fields of cfg into S3 options.
func (cfg Config) S3Options() []S3Option {
	var opts []S3Option
	if cfg.S3UploadTimeout > 0 {
		opts = append(opts, WithS3UploadTimeout(cfg.S3UploadTimeout))
	}
	if cfg.S3MaxAttempts > 0 {
		opts = append(opts, WithS3ConfigOption(config.WithRetryMaxAttempts(cfg.S3MaxAttempts)))
	}
	if cfg.S3ChecksumWhenRequired {
		opts = append(opts, WithS3ClientOption(func(o *s3.Options) {
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}))
	}
	return opts
}

// New builds the Storage selected by cfg.Driver. For S3 the options derived
// from cfg are applied before opts.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStorage(cfg.LocalDir, cfg.BaseURL)
	case DriverS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.S3Bucket,
			Region:         cfg.S3Region,
			AccessKeyID:    cfg.S3AccessKeyID,
			SecretKey:      cfg.S3SecretKey,
			Endpoint:       cfg.S3Endpoint,
			BaseURL:        cfg.S3BaseURL,
			ForcePathStyle: cfg.S3ForcePathStyle,
		}, append(cfg.S3Options(), opts...)...)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, cfg.Driver)
	}
}
