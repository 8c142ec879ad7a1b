package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LockMode controls what a posting does when the lock backend is unreachable.
type LockMode string

const (
	// LockModeRequired fails the posting with apperrors.ErrLockUnavailable.
	LockModeRequired LockMode = "required"
	// LockModeBestEffort logs a warning and relies on the unique source constraint.
	LockModeBestEffort LockMode = "best_effort"
)

// CodeRangeConfig is the numeric code window for an auto-provisioned account.
type CodeRangeConfig struct {
	Preferred int
	Min       int
	Max       int
}

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	JWTSecret          string
	MigrationsPath     string
	RateLimit          string
	CORSAllowedOrigins []string

	PostingLockTTL  time.Duration
	PostingLockMode LockMode

	TaxPayableCodes    CodeRangeConfig
	TaxReceivableCodes CodeRangeConfig
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("MIGRATIONS_PATH", "migrations")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTING_LOCK_TTL", "30s")
	viper.SetDefault("POSTING_LOCK_MODE", string(LockModeRequired))
	viper.SetDefault("TAX_PAYABLE_CODE_PREFERRED", 2100)
	viper.SetDefault("TAX_PAYABLE_CODE_MIN", 2100)
	viper.SetDefault("TAX_PAYABLE_CODE_MAX", 2999)
	viper.SetDefault("TAX_RECEIVABLE_CODE_PREFERRED", 1210)
	viper.SetDefault("TAX_RECEIVABLE_CODE_MIN", 1210)
	viper.SetDefault("TAX_RECEIVABLE_CODE_MAX", 1999)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Falling back to the in-memory ledger.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	// Load posting lock TTL (e.g., "30s", "2m")
	lockTTLStr := viper.GetString("POSTING_LOCK_TTL")
	lockTTL, err := time.ParseDuration(lockTTLStr)
	if err != nil || lockTTL <= 0 {
		lockTTL = 30 * time.Second
		log.Printf("Warning: Invalid value for POSTING_LOCK_TTL ('%s'). Defaulting to %s.\n", lockTTLStr, lockTTL.String())
	}
	cfg.PostingLockTTL = lockTTL

	cfg.PostingLockMode = LockMode(strings.ToLower(viper.GetString("POSTING_LOCK_MODE")))
	if cfg.PostingLockMode != LockModeRequired && cfg.PostingLockMode != LockModeBestEffort {
		return nil, fmt.Errorf("invalid POSTING_LOCK_MODE %q: must be %q or %q", cfg.PostingLockMode, LockModeRequired, LockModeBestEffort)
	}

	cfg.TaxPayableCodes = CodeRangeConfig{
		Preferred: viper.GetInt("TAX_PAYABLE_CODE_PREFERRED"),
		Min:       viper.GetInt("TAX_PAYABLE_CODE_MIN"),
		Max:       viper.GetInt("TAX_PAYABLE_CODE_MAX"),
	}
	if err := cfg.TaxPayableCodes.validate("TAX_PAYABLE_CODE"); err != nil {
		return nil, err
	}

	cfg.TaxReceivableCodes = CodeRangeConfig{
		Preferred: viper.GetInt("TAX_RECEIVABLE_CODE_PREFERRED"),
		Min:       viper.GetInt("TAX_RECEIVABLE_CODE_MIN"),
		Max:       viper.GetInt("TAX_RECEIVABLE_CODE_MAX"),
	}
	if err := cfg.TaxReceivableCodes.validate("TAX_RECEIVABLE_CODE"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (r CodeRangeConfig) validate(prefix string) error {
	if r.Min <= 0 || r.Max < r.Min {
		return fmt.Errorf("invalid %s range [%d, %d]", prefix, r.Min, r.Max)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
