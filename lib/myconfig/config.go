package myconfig

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/MarcGrol/shopauth/lib/myerrors"
)

const (
	SessionModeCookie = "cookie"
	SessionModeServer = "server"

	defaultExchangeTimeout = 10 * time.Second
	defaultSessionTTL      = 24 * time.Hour
)

type Config struct {
	// Shopify app credentials
	ClientID     string
	ClientSecret string
	Scopes       []string

	// Own public base address, e.g. https://app.example.com
	BaseURL string
	Port    string

	Env             string
	ExchangeTimeout time.Duration

	SessionMode       string
	SessionSigningKey string
	SessionTTL        time.Duration

	StateCheck bool

	RedisURL      string
	GCloudProject string
}

type getenvFunc func(string) string

// Load reads .env (when present) and resolves the configuration from the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv resolves the configuration using the given lookup function.
func FromEnv(getenv getenvFunc) (Config, error) {
	cfg := Config{}

	required := []struct {
		name  string
		value *string
	}{
		{"SHOPIFY_API_KEY", &cfg.ClientID},
		{"SHOPIFY_API_SECRET", &cfg.ClientSecret},
		{"BACKEND_HOST", &cfg.BaseURL},
		{"BACKEND_PORT", &cfg.Port},
	}
	for _, r := range required {
		v := strings.TrimSpace(getenv(r.name))
		if v == "" {
			return Config{}, myerrors.NewMissingConfigError(r.name)
		}
		*r.value = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	cfg.Scopes = splitScopes(getenv("SHOPIFY_SCOPES"))
	if len(cfg.Scopes) == 0 {
		return Config{}, myerrors.NewMissingConfigError("SHOPIFY_SCOPES")
	}

	cfg.Env = orDefault(getenv("APP_ENV"), "dev")
	cfg.RedisURL = getenv("REDIS_URL")
	cfg.GCloudProject = getenv("GOOGLE_CLOUD_PROJECT")

	var err error
	cfg.ExchangeTimeout, err = durationOrDefault(getenv, "EXCHANGE_TIMEOUT", defaultExchangeTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg.SessionTTL, err = durationOrDefault(getenv, "SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return Config{}, err
	}

	cfg.StateCheck, err = boolOrDefault(getenv, "OAUTH_STATE_CHECK", false)
	if err != nil {
		return Config{}, err
	}

	cfg.SessionMode = orDefault(getenv("SESSION_MODE"), SessionModeCookie)
	switch cfg.SessionMode {
	case SessionModeCookie:
	case SessionModeServer:
		cfg.SessionSigningKey = getenv("SESSION_SIGNING_KEY")
		if cfg.SessionSigningKey == "" {
			return Config{}, myerrors.NewMissingConfigError("SESSION_SIGNING_KEY")
		}
	default:
		return Config{}, myerrors.NewInvalidConfigError("SESSION_MODE", nil)
	}

	return cfg, nil
}

func (c Config) CallbackURL() string {
	return c.BaseURL + "/auth/callback"
}

func (c Config) ScopeString() string {
	return strings.Join(c.Scopes, ",")
}

func (c Config) SecureCookies() bool {
	return strings.HasPrefix(c.BaseURL, "https://")
}

func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.GCloudProject != ""
}

func splitScopes(raw string) []string {
	scopes := []string{}
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes
}

func orDefault(v string, def string) string {
	if v == "" {
		return def
	}
	return v
}

func durationOrDefault(getenv getenvFunc, name string, def time.Duration) (time.Duration, error) {
	v := getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, myerrors.NewInvalidConfigError(name, err)
	}
	if d <= 0 {
		return 0, myerrors.NewInvalidConfigError(name, nil)
	}
	return d, nil
}

func boolOrDefault(getenv getenvFunc, name string, def bool) (bool, error) {
	v := getenv(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, myerrors.NewInvalidConfigError(name, err)
	}
	return b, nil
}
