package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/gommon/bytes"
	"github.com/spf13/viper"

	"github.com/pharmconsult/pharmconsult/internal/domain/eligibility"
	"github.com/pharmconsult/pharmconsult/internal/domain/summary"
	"github.com/pharmconsult/pharmconsult/internal/domain/triage"
)

// DefaultReferralURL points patients at the national GP service finder.
const DefaultReferralURL = "https://www.healthdirect.gov.au/australian-health-services"

type Config struct {
	Port            string        `mapstructure:"PORT"`
	Env             string        `mapstructure:"ENV"`
	DatabaseURL     string        `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string      `mapstructure:"CORS_ORIGINS"`
	RateLimitRPS    float64       `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int           `mapstructure:"RATE_LIMIT_BURST"`
	BodyLimit       string        `mapstructure:"BODY_LIMIT"`
	RequestTimeout  time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
	TLSEnabled      bool          `mapstructure:"TLS_ENABLED"`
	TLSCertFile     string        `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile      string        `mapstructure:"TLS_KEY_FILE"`
	ReferralURL     string        `mapstructure:"REFERRAL_URL"`
	SummaryFileName string        `mapstructure:"SUMMARY_FILENAME"`

	UTISingleSymptomConservative bool `mapstructure:"UTI_SINGLE_SYMPTOM_CONSERVATIVE"`
	PsoriasisBSAThreshold        int  `mapstructure:"PSORIASIS_BSA_THRESHOLD"`
	PsoriasisThresholdInclusive  bool `mapstructure:"PSORIASIS_THRESHOLD_INCLUSIVE"`
}

var keys = []string{
	"PORT",
	"ENV",
	"DATABASE_URL",
	"DB_MAX_CONNS",
	"DB_MIN_CONNS",
	"CORS_ORIGINS",
	"RATE_LIMIT_RPS",
	"RATE_LIMIT_BURST",
	"BODY_LIMIT",
	"REQUEST_TIMEOUT",
	"METRICS_ENABLED",
	"TLS_ENABLED",
	"TLS_CERT_FILE",
	"TLS_KEY_FILE",
	"REFERRAL_URL",
	"SUMMARY_FILENAME",
	"UTI_SINGLE_SYMPTOM_CONSERVATIVE",
	"PSORIASIS_BSA_THRESHOLD",
	"PSORIASIS_THRESHOLD_INCLUSIVE",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)
	v.SetDefault("BODY_LIMIT", "64K")
	v.SetDefault("REQUEST_TIMEOUT", "15s")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("REFERRAL_URL", DefaultReferralURL)
	v.SetDefault("SUMMARY_FILENAME", summary.DefaultFileName)
	v.SetDefault("UTI_SINGLE_SYMPTOM_CONSERVATIVE", true)
	v.SetDefault("PSORIASIS_BSA_THRESHOLD", triage.DefaultPolicy().PsoriasisBSAThreshold)
	v.SetDefault("PSORIASIS_THRESHOLD_INCLUSIVE", false)

	// Bind env vars explicitly so Unmarshal picks them up
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 1 && strings.Contains(cfg.CORSOrigins[0], ",") {
		cfg.CORSOrigins = strings.Split(cfg.CORSOrigins[0], ",")
	}
	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AuditEnabled reports whether a database is configured for the audit trail.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// EligibilityPolicy returns the default eligibility rules with configured
// overrides applied.
func (c *Config) EligibilityPolicy() eligibility.Policy {
	p := eligibility.DefaultPolicy()
	p.SingleSymptomConservative = c.UTISingleSymptomConservative
	return p
}

// TriagePolicy returns the triage thresholds with configured overrides applied.
func (c *Config) TriagePolicy() triage.Policy {
	return triage.Policy{
		PsoriasisBSAThreshold:       c.PsoriasisBSAThreshold,
		PsoriasisThresholdInclusive: c.PsoriasisThresholdInclusive,
	}
}

// Validate checks that the configuration is safe to run.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must not exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	// echo's BodyLimit panics on a size gommon/bytes cannot parse.
	if n, err := bytes.Parse(c.BodyLimit); err != nil || n <= 0 {
		return fmt.Errorf("BODY_LIMIT must be a positive size such as 64K, got %q", c.BodyLimit)
	}
	if c.PsoriasisBSAThreshold < 0 || c.PsoriasisBSAThreshold > 100 {
		return fmt.Errorf("PSORIASIS_BSA_THRESHOLD must be between 0 and 100, got %d", c.PsoriasisBSAThreshold)
	}
	if c.ReferralURL != "" {
		u, err := url.Parse(c.ReferralURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("REFERRAL_URL must be an absolute URL, got %q", c.ReferralURL)
		}
	}
	if strings.ContainsAny(c.SummaryFileName, `/\"`) {
		return fmt.Errorf("SUMMARY_FILENAME must be a bare file name, got %q", c.SummaryFileName)
	}

	// TLS validation: when TLS is enabled, cert and key files must be specified.
	if c.TLSEnabled {
		if c.TLSCertFile == "" {
			return fmt.Errorf("TLS_CERT_FILE is required when TLS_ENABLED is true")
		}
		if c.TLSKeyFile == "" {
			return fmt.Errorf("TLS_KEY_FILE is required when TLS_ENABLED is true")
		}
	}

	return nil
}
