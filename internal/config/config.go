package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/republic-cup/internal/platform/logging"
	"github.com/riskibarqy/republic-cup/internal/platform/resilience"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

var adminPINPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ShutdownTimeout            time.Duration
	LogLevel                   logging.Level
	CORSAllowedOrigins         []string
	SwaggerEnabled             bool
	StoreDriver                string
	DBURL                      string
	DBDisablePreparedBinary    bool
	SeedOnStart                bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	AdminPIN                   string
	AdminSessionSecret         string
	AdminSessionTTL            time.Duration
	RedisEnabled               bool
	RedisURL                   string
	RedisKeyPrefix             string
	RedisCircuit               resilience.CircuitBreakerConfig
	BackupBucket               string
	BackupRegion               string
	BackupEndpoint             string
	BackupAccessKeyID          string
	BackupSecretAccessKey      string
	BackupPrefix               string
	BackupWorkers              int
	BackupCircuit              resilience.CircuitBreakerConfig
	UptraceEnabled             bool
	UptraceDSN                 string
	PprofEnabled               bool
	PprofAddr                  string
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "republic-cup-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		LogLevel:                   logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		DBURL:                      strings.TrimSpace(getEnv("DB_URL", "")),
		RedisURL:                   strings.TrimSpace(getEnv("REDIS_URL", "redis://localhost:6379/0")),
		RedisKeyPrefix:             strings.TrimSpace(getEnv("REDIS_KEY_PREFIX", "republic-cup:"+appEnv)),
		BackupBucket:               strings.TrimSpace(getEnv("BACKUP_BUCKET", "")),
		BackupRegion:               strings.TrimSpace(getEnv("BACKUP_REGION", "auto")),
		BackupEndpoint:             strings.TrimSpace(getEnv("BACKUP_ENDPOINT", "")),
		BackupAccessKeyID:          strings.TrimSpace(getEnv("BACKUP_ACCESS_KEY_ID", "")),
		BackupSecretAccessKey:      strings.TrimSpace(getEnv("BACKUP_SECRET_ACCESS_KEY", "")),
		BackupPrefix:               strings.TrimSpace(getEnv("BACKUP_PREFIX", "backups")),
		UptraceDSN:                 strings.TrimSpace(getEnv("UPTRACE_DSN", "")),
		PprofAddr:                  strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeServerAddress:     strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	if cfg.SwaggerEnabled, err = getEnvAsBool("SWAGGER_ENABLED", appEnv != EnvProd); err != nil {
		return Config{}, err
	}
	if cfg.ReadTimeout, err = getEnvAsDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsDuration("APP_WRITE_TIMEOUT", "15s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}

	if err := loadStore(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadAdmin(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadRedis(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadBackup(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStore(cfg *Config) error {
	driver := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", "")))
	if driver == "" {
		driver = StoreMemory
		if cfg.DBURL != "" {
			driver = StorePostgres
		}
	}
	switch driver {
	case StoreMemory:
	case StorePostgres:
		if cfg.DBURL == "" {
			return fmt.Errorf("DB_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: valid values are %s, %s", driver, StoreMemory, StorePostgres)
	}
	cfg.StoreDriver = driver

	var err error
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", true); err != nil {
		return err
	}
	if cfg.SeedOnStart, err = getEnvAsBool("SEED_ON_START", true); err != nil {
		return err
	}
	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return err
	}
	if cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "5s"); err != nil {
		return err
	}
	return nil
}

func loadAdmin(cfg *Config) error {
	cfg.AdminPIN = strings.TrimSpace(getEnv("ADMIN_PIN", ""))
	if cfg.AdminPIN == "" && cfg.AppEnv == EnvDev {
		cfg.AdminPIN = "5555"
	}
	if !adminPINPattern.MatchString(cfg.AdminPIN) {
		return fmt.Errorf("ADMIN_PIN must be exactly 4 digits")
	}

	cfg.AdminSessionSecret = strings.TrimSpace(getEnv("ADMIN_SESSION_SECRET", ""))
	if cfg.AdminSessionSecret == "" {
		if cfg.AppEnv != EnvDev {
			return fmt.Errorf("ADMIN_SESSION_SECRET is required when APP_ENV=%s", cfg.AppEnv)
		}
		cfg.AdminSessionSecret = "dev-only-admin-session-secret"
	}

	var err error
	cfg.AdminSessionTTL, err = getEnvAsDuration("ADMIN_SESSION_TTL", "12h")
	return err
}

func loadRedis(cfg *Config) error {
	var err error
	if cfg.RedisEnabled, err = getEnvAsBool("REDIS_ENABLED", false); err != nil {
		return err
	}
	if cfg.RedisEnabled && cfg.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when REDIS_ENABLED=true")
	}
	cfg.RedisCircuit, err = loadCircuit("REDIS")
	return err
}

func loadBackup(cfg *Config) error {
	var err error
	if cfg.BackupWorkers, err = getEnvAsInt("BACKUP_WORKERS", 4); err != nil {
		return fmt.Errorf("parse BACKUP_WORKERS: %w", err)
	}
	if cfg.BackupWorkers < 1 {
		return fmt.Errorf("BACKUP_WORKERS must be >= 1")
	}
	if cfg.BackupBucket != "" && (cfg.BackupAccessKeyID == "") != (cfg.BackupSecretAccessKey == "") {
		return fmt.Errorf("BACKUP_ACCESS_KEY_ID and BACKUP_SECRET_ACCESS_KEY must be set together")
	}
	cfg.BackupCircuit, err = loadCircuit("BACKUP")
	return err
}

func loadObservability(cfg *Config) error {
	var err error
	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return err
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeUploadRate, err = getEnvAsDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func loadCircuit(prefix string) (resilience.CircuitBreakerConfig, error) {
	out := resilience.DefaultCircuitBreakerConfig()
	var err error
	if out.Enabled, err = getEnvAsBool(prefix+"_CIRCUIT_ENABLED", out.Enabled); err != nil {
		return out, err
	}
	if out.FailureThreshold, err = getEnvAsInt(prefix+"_CIRCUIT_FAILURE_COUNT", out.FailureThreshold); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_FAILURE_COUNT: %w", prefix, err)
	}
	if out.FailureThreshold < 1 {
		return out, fmt.Errorf("%s_CIRCUIT_FAILURE_COUNT must be >= 1", prefix)
	}
	if out.OpenTimeout, err = getEnvAsDuration(prefix+"_CIRCUIT_OPEN_TIMEOUT", out.OpenTimeout.String()); err != nil {
		return out, err
	}
	if out.HalfOpenMaxReq, err = getEnvAsInt(prefix+"_CIRCUIT_HALF_OPEN_MAX_REQ", out.HalfOpenMaxReq); err != nil {
		return out, fmt.Errorf("parse %s_CIRCUIT_HALF_OPEN_MAX_REQ: %w", prefix, err)
	}
	if out.HalfOpenMaxReq < 1 {
		return out, fmt.Errorf("%s_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1", prefix)
	}
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}
	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return out, nil
}

// getEnvAsDuration parses a positive duration.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
