package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
)

// Named variables read from the configuration sources.
const (
	EnvURL              = "AKAUNTING_URL"
	EnvEmail            = "AKAUNTING_EMAIL"
	EnvPassword         = "AKAUNTING_PASSWORD"
	EnvCompanyID        = "AKAUNTING_COMPANY_ID"
	EnvDefaultContactID = "AKAUNTING_DEFAULT_CONTACT_ID"
	EnvAPIKey           = "AKAUNTING_API_KEY"
	EnvCashAccountID    = "AKAUNTING_CASH_ACCOUNT_ID"
)

var requiredVars = []string{EnvURL, EnvEmail, EnvPassword}

// Config holds everything needed to talk to the accounting API.
type Config struct {
	BaseURL          string
	Email            string
	Password         string
	CompanyID        string
	DefaultContactID string
	APIKey           string
	CashAccountID    string
}

// MissingError enumerates required variables absent from the configuration.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return "missing configuration: " + strings.Join(e.Vars, ", ")
}

// Source is a single place configuration values may come from.
type Source interface {
	Name() string
	Lookup(key string) (string, bool)
}

// EnvSource reads the process environment (the platform-injected runtime).
type EnvSource struct{}

func (EnvSource) Name() string { return "env" }

func (EnvSource) Lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if v == "" {
		return "", false
	}
	return v, ok
}

// FileSource reads a dotenv file once and serves lookups from it. A missing
// or unreadable file behaves like an empty source.
type FileSource struct {
	path string
	vals map[string]string
}

func NewFileSource(path string) *FileSource {
	vals, err := godotenv.Read(path)
	if err != nil {
		vals = map[string]string{}
	}
	return &FileSource{path: path, vals: vals}
}

func (s *FileSource) Name() string { return s.path }

func (s *FileSource) Lookup(key string) (string, bool) {
	v, ok := s.vals[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

// Resolve walks the candidate sources in order and builds the Config from the
// first source carrying all required variables. When no source qualifies it
// still returns a Config built from the first source so optional values and
// defaults are usable, together with a MissingError naming what is absent.
// That error is fatal and non-retryable for any request it reaches.
func Resolve(sources ...Source) (*Config, error) {
	if len(sources) == 0 {
		return &Config{}, &MissingError{Vars: requiredVars}
	}
	for _, src := range sources {
		if len(missingIn(src)) == 0 {
			return fromSource(src), nil
		}
	}
	first := sources[0]
	return fromSource(first), &MissingError{Vars: missingIn(first)}
}

// Validate reports required values that are still empty.
func (c *Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, EnvURL)
	}
	if c.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if c.Password == "" {
		missing = append(missing, EnvPassword)
	}
	if len(missing) > 0 {
		return &MissingError{Vars: missing}
	}
	return nil
}

func missingIn(src Source) []string {
	var missing []string
	for _, key := range requiredVars {
		if _, ok := src.Lookup(key); !ok {
			missing = append(missing, key)
		}
	}
	return missing
}

func fromSource(src Source) *Config {
	cfg := &Config{
		CompanyID:     "1",
		CashAccountID: "1",
	}
	if v, ok := src.Lookup(EnvURL); ok {
		cfg.BaseURL = NormalizeBaseURL(v)
	}
	if v, ok := src.Lookup(EnvEmail); ok {
		cfg.Email = v
	}
	if v, ok := src.Lookup(EnvPassword); ok {
		cfg.Password = v
	}
	if v, ok := src.Lookup(EnvCompanyID); ok {
		cfg.CompanyID = v
	}
	if v, ok := src.Lookup(EnvDefaultContactID); ok {
		cfg.DefaultContactID = v
	}
	if v, ok := src.Lookup(EnvAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := src.Lookup(EnvCashAccountID); ok {
		cfg.CashAccountID = v
	}
	return cfg
}

var apiSuffixRe = regexp.MustCompile(`/api(/v\d+)?$`)

// NormalizeBaseURL strips trailing slashes and any trailing /api or /api/vN
// suffix so the client can append a canonical /api prefix uniformly.
func NormalizeBaseURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	u = apiSuffixRe.ReplaceAllString(u, "")
	return strings.TrimRight(u, "/")
}
