package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"storefront/internal/domain/constants"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath                = "."
	defaultMaxRequestBodySize  = "100KB"
	defaultBcryptCost          = 12
	defaultSessionTTL          = 24 * time.Hour
	defaultSetupTokenTTL       = 48 * time.Hour
	defaultSlugMinLength       = 2
	defaultSlugMaxLength       = 63
	slugColumnLength           = 63
	defaultSlugMaxAttempts     = 1000
	defaultNotificationTimeout = 5 * time.Second
	defaultMaxDocumentSize     = 10 << 20
	defaultUploadTimeout       = 30 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		// TrustedProxies lists proxy CIDRs whose X-Forwarded-For is believed. Empty means
		// the client IP is always the TCP peer.
		TrustedProxies []string `json:"trustedProxies" yaml:"trustedProxies"`

		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
		// RateLimit applies to unauthenticated write endpoints (application submit, document upload).
		RateLimit struct {
			RequestsPerSecond float64       `json:"requestsPerSecond" yaml:"requestsPerSecond"`
			Burst             int           `json:"burst" yaml:"burst"`
			ExpiresIn         time.Duration `json:"expiresIn" yaml:"expiresIn"`
		} `json:"rateLimit" yaml:"rateLimit"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Session       string `json:"session" yaml:"session"`
		PasswordSetup string `json:"passwordSetup" yaml:"passwordSetup"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	Slug *SlugConfig `json:"slug" yaml:"slug"`

	// Bootstrap seeds the first super admin when running cmd/migrate
	Bootstrap *BootstrapConfig `json:"bootstrap" yaml:"bootstrap"`

	// Notification controls how lifecycle messages leave the API process
	Notification *NotificationConfig `json:"notification" yaml:"notification"`

	// Storage configuration for verification documents
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Firebase configuration for admin push alerts (notifier worker)
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// SMTP configuration for outbound email (notifier worker)
	SMTP *SMTPConfig `json:"smtp" yaml:"smtp"`

	// QRCode configuration for storefront QR codes
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`

	// PubSub configuration for event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// RabbitMQ configuration, used when pubsub.provider is "rabbitmq"
	RabbitMQ *RabbitMQConfig `json:"rabbitmq" yaml:"rabbitmq"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost    int           `json:"bcryptCost" yaml:"bcryptCost"`
	SessionTTL    time.Duration `json:"sessionTtl" yaml:"sessionTtl"`
	SetupTokenTTL time.Duration `json:"setupTokenTtl" yaml:"setupTokenTtl"`
	// RoleRefreshInterval re-reads the subject from the database once a session is older
	// than this. Zero keeps the role embedded at login for the whole session.
	RoleRefreshInterval time.Duration `json:"roleRefreshInterval" yaml:"roleRefreshInterval"`
	CookieName          string        `json:"cookieName" yaml:"cookieName"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

// SlugConfig bounds storefront slugs
type SlugConfig struct {
	MinLength   int `json:"minLength" yaml:"minLength"`
	MaxLength   int `json:"maxLength" yaml:"maxLength"`
	MaxAttempts int `json:"maxAttempts" yaml:"maxAttempts"`
}

// BootstrapConfig holds the first super admin account
type BootstrapConfig struct {
	SuperAdminEmail    string `json:"superAdminEmail" yaml:"superAdminEmail"`
	SuperAdminPassword string `json:"superAdminPassword" yaml:"superAdminPassword"`
	SuperAdminName     string `json:"superAdminName" yaml:"superAdminName"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
	// File enables a rotated log file in addition to stdout
	File *LogFileConfig `json:"file" yaml:"file"`
}

// LogFileConfig configures lumberjack rotation
type LogFileConfig struct {
	Path       string `json:"path" yaml:"path"`
	MaxSizeMB  int    `json:"maxSizeMb" yaml:"maxSizeMb"`
	MaxBackups int    `json:"maxBackups" yaml:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays" yaml:"maxAgeDays"`
	Compress   bool   `json:"compress" yaml:"compress"`
}

// NotificationConfig defines how notifications are dispatched
type NotificationConfig struct {
	// Provider is "log" (write to the application log) or "events" (publish to pubsub)
	Provider string `json:"provider" yaml:"provider"`
	// Timeout bounds each best-effort notification
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// SetupURL is the frontend page that accepts ?token=<password setup token>
	SetupURL string `json:"setupUrl" yaml:"setupUrl"`
	// AdminTopic is the FCM topic admin devices subscribe to
	AdminTopic string `json:"adminTopic" yaml:"adminTopic"`
	// AdminEmails receive application alerts by email
	AdminEmails []string `json:"adminEmails" yaml:"adminEmails"`
}

// StorageConfig defines the document storage backend
type StorageConfig struct {
	// BucketURL is a gocloud.dev blob URL: file:///path, mem://, gs://bucket, s3://bucket
	BucketURL string `json:"bucketUrl" yaml:"bucketUrl"`
	// PublicBaseURL prefixes object keys to form the returned document URL
	PublicBaseURL string        `json:"publicBaseUrl" yaml:"publicBaseUrl"`
	KeyPrefix     string        `json:"keyPrefix" yaml:"keyPrefix"`
	MaxSizeBytes  int64         `json:"maxSizeBytes" yaml:"maxSizeBytes"`
	AllowedTypes  []string      `json:"allowedTypes" yaml:"allowedTypes"`
	UploadTimeout time.Duration `json:"uploadTimeout" yaml:"uploadTimeout"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// SMTPConfig defines the outbound mail relay
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "noop", "local", "google" or "rabbitmq"
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// PushAudience is the expected audience of push OIDC tokens (notifier worker)
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// RabbitMQConfig defines the AMQP transport
type RabbitMQConfig struct {
	URL        string `json:"url" yaml:"url"`
	Exchange   string `json:"exchange" yaml:"exchange"`
	RoutingKey string `json:"routingKey" yaml:"routingKey"`
	Queue      string `json:"queue" yaml:"queue"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections so callers never nil-check them.
func (cfg *Config) applyDefaults() {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.BcryptCost == 0 {
		cfg.Auth.BcryptCost = defaultBcryptCost
	}
	if cfg.Auth.SessionTTL == 0 {
		cfg.Auth.SessionTTL = defaultSessionTTL
	}
	if cfg.Auth.SetupTokenTTL == 0 {
		cfg.Auth.SetupTokenTTL = defaultSetupTokenTTL
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = constants.SessionCookieName
	}

	if cfg.PasswordStrength == nil {
		cfg.PasswordStrength = &PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        72,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
		}
	}

	if cfg.Slug == nil {
		cfg.Slug = &SlugConfig{}
	}
	if cfg.Slug.MinLength == 0 {
		cfg.Slug.MinLength = defaultSlugMinLength
	}
	if cfg.Slug.MaxLength == 0 {
		cfg.Slug.MaxLength = defaultSlugMaxLength
	}
	if cfg.Slug.MaxAttempts == 0 {
		cfg.Slug.MaxAttempts = defaultSlugMaxAttempts
	}

	if cfg.Notification == nil {
		cfg.Notification = &NotificationConfig{Provider: constants.NotificationProviderLog}
	}
	if cfg.Notification.Timeout == 0 {
		cfg.Notification.Timeout = defaultNotificationTimeout
	}

	if cfg.Storage == nil {
		cfg.Storage = &StorageConfig{BucketURL: "mem://"}
	}
	if cfg.Storage.MaxSizeBytes == 0 {
		cfg.Storage.MaxSizeBytes = defaultMaxDocumentSize
	}
	if len(cfg.Storage.AllowedTypes) == 0 {
		cfg.Storage.AllowedTypes = []string{"application/pdf", "image/jpeg", "image/png"}
	}
	if cfg.Storage.UploadTimeout == 0 {
		cfg.Storage.UploadTimeout = defaultUploadTimeout
	}

	if cfg.PubSub == nil {
		cfg.PubSub = &PubSubConfig{Provider: constants.PubSubProviderNoop}
	}
}

// validate rejects settings that would only fail later at request time.
func (cfg *Config) validate() error {
	if cfg.Slug.MinLength < 1 || cfg.Slug.MinLength > cfg.Slug.MaxLength {
		return errors.Errorf("slug.minLength must be between 1 and slug.maxLength, got %d", cfg.Slug.MinLength)
	}
	if cfg.Slug.MaxLength > slugColumnLength {
		return errors.Errorf("slug.maxLength must not exceed %d, got %d", slugColumnLength, cfg.Slug.MaxLength)
	}

	for _, cidr := range cfg.HTTP.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return errors.Wrapf(err, "http.trustedProxies: invalid CIDR %q", cidr)
		}
	}

	return nil
}

// IsProduction reports whether cookies must be marked Secure.
func (cfg *Config) IsProduction() bool {
	return cfg.Env.Env != constants.EnvDevelop
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
