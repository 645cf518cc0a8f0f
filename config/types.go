// Package config holds the caller-supplied SDK configuration: project
// identity and credentials, API location, static theme, and the ambient
// cache/logging knobs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/quillfeed/quillfeed/design"
	"github.com/quillfeed/quillfeed/mockdata"
)

// Config is the complete static configuration for one SDK session.
type Config struct {
	Project     ProjectConfig      `koanf:"project"`
	API         APIConfig          `koanf:"api"`
	Locale      LocaleConfig       `koanf:"locale"`
	Analytics   AnalyticsConfig    `koanf:"analytics"`
	Theme       design.ThemeConfig `koanf:"theme"`
	Cache       CacheConfig        `koanf:"cache"`
	DesignCache DesignCacheConfig  `koanf:"designCache"`
	Logging     LoggingConfig      `koanf:"logging"`
}

// ProjectConfig identifies and authenticates the project.
type ProjectConfig struct {
	ID        string `koanf:"id"`
	SecretKey string `koanf:"secretKey"`
	// APIKey is the legacy credential kept for older backends.
	APIKey string `koanf:"apiKey"`
}

// APIConfig locates the content API. BaseURL, when set, bypasses origin
// heuristics entirely; Origin is the host page origin used by those
// heuristics.
type APIConfig struct {
	BaseURL string `koanf:"baseURL"`
	Origin  string `koanf:"origin"`
}

// LocaleConfig carries the optional language/timezone request headers.
type LocaleConfig struct {
	Language string `koanf:"language"`
	Timezone string `koanf:"timezone"`
}

// AnalyticsConfig toggles custom analytics event delivery.
type AnalyticsConfig struct {
	Enabled bool `koanf:"enabled"`
}

// CacheConfig selects the response cache backend and TTL overrides.
type CacheConfig struct {
	Backend string            `koanf:"backend"`
	TTL     CacheTTLConfig    `koanf:"ttl"`
	Valkey  ValkeyCacheConfig `koanf:"valkey"`
}

// CacheTTLConfig holds optional duration strings per endpoint group
// ("2m", "30s"). Unparseable values keep the built-in default.
type CacheTTLConfig struct {
	Lists    string `koanf:"lists"`
	Post     string `koanf:"post"`
	Taxonomy string `koanf:"taxonomy"`
	Metadata string `koanf:"metadata"`
	Design   string `koanf:"design"`
}

// ValkeyCacheConfig configures the shared valkey cache backend.
type ValkeyCacheConfig struct {
	Address   string               `koanf:"address"`
	Username  string               `koanf:"username"`
	Password  string               `koanf:"password"`
	DB        int                  `koanf:"db"`
	Namespace string               `koanf:"namespace"`
	TLS       ValkeyTLSCacheConfig `koanf:"tls"`
}

// ValkeyTLSCacheConfig controls TLS for the valkey connection.
type ValkeyTLSCacheConfig struct {
	Enabled bool   `koanf:"enabled"`
	CAFile  string `koanf:"caFile"`
}

// DesignCacheConfig locates the persisted design document store.
type DesignCacheConfig struct {
	Dir string `koanf:"dir"`
}

// LoggingConfig expresses log level and format.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate enforces the invariants a session requires before constructing a
// client. Failures are configuration errors the session surfaces as a
// rejected state.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil")
	}
	if strings.TrimSpace(c.Project.ID) == "" {
		return errors.New("config: project.id required")
	}
	if strings.TrimSpace(c.Project.SecretKey) == "" && c.Project.ID != mockdata.ProjectID {
		return errors.New("config: project.secretKey required")
	}
	backend := strings.TrimSpace(strings.ToLower(c.Cache.Backend))
	switch backend {
	case "", "memory":
	case "valkey":
		if strings.TrimSpace(c.Cache.Valkey.Address) == "" {
			return errors.New("config: cache.valkey.address required for valkey backend")
		}
	default:
		return fmt.Errorf("config: cache.backend unsupported: %s", c.Cache.Backend)
	}
	for name, raw := range map[string]string{
		"lists":    c.Cache.TTL.Lists,
		"post":     c.Cache.TTL.Post,
		"taxonomy": c.Cache.TTL.Taxonomy,
		"metadata": c.Cache.TTL.Metadata,
		"design":   c.Cache.TTL.Design,
	} {
		if raw == "" {
			continue
		}
		if _, err := time.ParseDuration(raw); err != nil {
			return fmt.Errorf("config: cache.ttl.%s invalid: %q", name, raw)
		}
	}
	return nil
}

// DefaultConfig returns the baseline values for one session.
func DefaultConfig() Config {
	return Config{
		Analytics: AnalyticsConfig{Enabled: true},
		Cache: CacheConfig{
			Backend: "memory",
			Valkey:  ValkeyCacheConfig{Namespace: "quillfeed"},
		},
		DesignCache: DesignCacheConfig{Dir: ".quillfeed"},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
