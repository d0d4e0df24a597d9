package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type mapSource struct {
	name string
	vals map[string]string
}

func (s mapSource) Name() string { return s.name }

func (s mapSource) Lookup(key string) (string, bool) {
	v, ok := s.vals[key]
	if v == "" {
		return "", false
	}
	return v, ok
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "https://books.example.com", "https://books.example.com"},
		{"TrailingSlash", "https://books.example.com/", "https://books.example.com"},
		{"ApiSuffix", "https://books.example.com/api", "https://books.example.com"},
		{"VersionedApiSuffix", "https://books.example.com/api/v1", "https://books.example.com"},
		{"ApiSuffixTrailingSlash", "https://books.example.com/api/", "https://books.example.com"},
		{"ManySlashes", "https://books.example.com///", "https://books.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeBaseURL(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePrefersFirstCompleteSource(t *testing.T) {
	runtime := mapSource{name: "runtime", vals: map[string]string{
		EnvURL:      "https://runtime.example.com/api",
		EnvEmail:    "runtime@example.com",
		EnvPassword: "runtime-secret",
	}}
	local := mapSource{name: "local", vals: map[string]string{
		EnvURL:      "https://local.example.com",
		EnvEmail:    "local@example.com",
		EnvPassword: "local-secret",
	}}

	cfg, err := Resolve(runtime, local)
	require.NoError(t, err)
	require.Equal(t, "https://runtime.example.com", cfg.BaseURL)
	require.Equal(t, "runtime@example.com", cfg.Email)
}

func TestResolveFallsBackToSecondSource(t *testing.T) {
	runtime := mapSource{name: "runtime", vals: map[string]string{
		EnvURL: "https://runtime.example.com",
	}}
	local := mapSource{name: "local", vals: map[string]string{
		EnvURL:              "https://local.example.com",
		EnvEmail:            "local@example.com",
		EnvPassword:         "local-secret",
		EnvCompanyID:        "7",
		EnvDefaultContactID: "15",
	}}

	cfg, err := Resolve(runtime, local)
	require.NoError(t, err)
	require.Equal(t, "https://local.example.com", cfg.BaseURL)
	require.Equal(t, "7", cfg.CompanyID)
	require.Equal(t, "15", cfg.DefaultContactID)
}

func TestResolveEnumeratesMissingVars(t *testing.T) {
	runtime := mapSource{name: "runtime", vals: map[string]string{
		EnvURL: "https://runtime.example.com",
	}}

	cfg, err := Resolve(runtime, mapSource{name: "local"})
	require.Error(t, err)
	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, []string{EnvEmail, EnvPassword}, missing.Vars)
	require.Contains(t, err.Error(), EnvEmail)
	require.Contains(t, err.Error(), EnvPassword)

	// A partial config is still returned for defaults and optional values.
	require.NotNil(t, cfg)
	require.Equal(t, "https://runtime.example.com", cfg.BaseURL)
	require.Equal(t, "1", cfg.CompanyID)
	require.Equal(t, "1", cfg.CashAccountID)
}

func TestValidate(t *testing.T) {
	cfg := &Config{BaseURL: "https://books.example.com", Email: "a@b.c", Password: "s"}
	require.NoError(t, cfg.Validate())

	cfg.Password = ""
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), EnvPassword)
}
