// Package config loads application settings from config/app.json and .env,
// in that order, with later sources overriding earlier ones. All accessors
// are safe to call before Load(); they trigger a lazy load and fall back to
// compiled-in defaults when neither file exists.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultAppPort   = "5002"
	defaultAppEnv    = "local"
	defaultAppURL    = "http://localhost:5002"
	defaultGRPCPort  = "5003"
	defaultMongoURL  = "mongodb://localhost:27017"
	defaultMongoDB   = "portfolio"
	defaultRedisAddr = "localhost:6379"
	defaultJWTSecret = "change-me-in-production"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func defaultValues() map[string]string {
	return map[string]string{
		"APP_PORT":             defaultAppPort,
		"APP_ENV":              defaultAppEnv,
		"APP_URL":              defaultAppURL,
		"GRPC_PORT":            defaultGRPCPort,
		"MONGO_URL":            defaultMongoURL,
		"MONGO_DB":             defaultMongoDB,
		"MONGO_LOG_COLLECTION": "",
		"REDIS_ADDR":           defaultRedisAddr,
		"REDIS_PASSWORD":       "",
		"JWT_SECRET":           defaultJWTSecret,
		"AUTH_ENABLED":         "false",
		"STORAGE_DISK":         "local",
		"STORAGE_LOCAL_ROOT":   "public",
		"CORS_ORIGINS":         "",
		"RATE_LIMIT_MAX":       "100",
		"RATE_LIMIT_WINDOW":    "15m",
		"RATE_LIMIT_ALLOW":     "127.0.0.1,::1",
	}
}

// Load reads config/app.json and .env exactly once. Missing files are not
// an error; malformed ones are.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func AppPort() string { _ = Load(); return get("APP_PORT", defaultAppPort) }
func AppEnv() string  { _ = Load(); return get("APP_ENV", defaultAppEnv) }

// AppURL is the externally visible base URL used to build public asset links.
func AppURL() string { _ = Load(); return strings.TrimRight(get("APP_URL", defaultAppURL), "/") }

func GRPCPort() string { _ = Load(); return get("GRPC_PORT", defaultGRPCPort) }

func MongoURL() string { _ = Load(); return get("MONGO_URL", defaultMongoURL) }
func MongoDB() string  { _ = Load(); return get("MONGO_DB", defaultMongoDB) }

// MongoLogCollection names the collection used by the async slog handler.
// Empty disables database log shipping.
func MongoLogCollection() string { _ = Load(); return get("MONGO_LOG_COLLECTION", "") }

func RedisAddr() string     { _ = Load(); return get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { _ = Load(); return get("REDIS_PASSWORD", "") }

func JWTSecret() string { _ = Load(); return get("JWT_SECRET", defaultJWTSecret) }

// AuthEnabled gates the bearer-token guard on mutating routes.
func AuthEnabled() bool { _ = Load(); return get("AUTH_ENABLED", "false") == "true" }

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { _ = Load(); return get("STORAGE_LOCAL_ROOT", "public") }

func StorageS3Bucket() string   { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string   { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string   { _ = Load(); return get("S3_SECRET", "") }
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── CORS / rate limiting ─────────────────────────────────────────────────────

// CORSOrigins returns the origin whitelist. Empty means allow any origin.
func CORSOrigins() []string {
	_ = Load()
	raw := get("CORS_ORIGINS", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func RateLimitMax() int {
	_ = Load()
	n, err := strconv.Atoi(get("RATE_LIMIT_MAX", "100"))
	if err != nil || n <= 0 {
		return 100
	}
	return n
}

func RateLimitWindow() time.Duration {
	_ = Load()
	d, err := time.ParseDuration(get("RATE_LIMIT_WINDOW", "15m"))
	if err != nil || d <= 0 {
		return 15 * time.Minute
	}
	return d
}

// RateLimitAllowList returns IPs exempt from rate limiting.
func RateLimitAllowList() []string {
	_ = Load()
	parts := strings.Split(get("RATE_LIMIT_ALLOW", ""), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ── Mail ─────────────────────────────────────────────────────────────────────

func MailHost() string     { _ = Load(); return get("MAIL_HOST", "") }
func MailPort() string     { _ = Load(); return get("MAIL_PORT", "587") }
func MailUsername() string { _ = Load(); return get("MAIL_USERNAME", "") }
func MailPassword() string { _ = Load(); return get("MAIL_PASSWORD", "") }
func MailFrom() string     { _ = Load(); return get("MAIL_FROM", "") }
func MailTo() string       { _ = Load(); return get("MAIL_TO", "") }

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a key at runtime. Intended for tests.
func Set(key, value string) {
	mu.Lock()
	values[strings.ToUpper(key)] = value
	mu.Unlock()
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}
