package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sagarc03/kvgate"
	kvhttp "github.com/sagarc03/kvgate/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for kvgate.
type Config struct {
	Env    string            `mapstructure:"env" validate:"omitempty,oneof=dev development prod production"`
	Server ServerConfig      `mapstructure:"server"`
	Store  StoreConfig       `mapstructure:"store"`
	Routes []RouteSpec       `mapstructure:"routes" validate:"dive"`
	CORS   kvhttp.CORSConfig `mapstructure:"cors"`
	Log    LogConfig         `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,min=1,max=65535"`
	MaxPathLength   int           `mapstructure:"max_path_length" validate:"min=1"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"min=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"min=0"`
}

// StoreConfig is the outermost route scope plus reader settings that apply
// to every store.
type StoreConfig struct {
	kvgate.RouteSettings `mapstructure:",squash"`

	LockTimeout  time.Duration `mapstructure:"lock_timeout" validate:"min=0"`
	MaxValueSize int           `mapstructure:"max_value_size" validate:"min=0"`
}

// RouteSpec declares a route scope. Unset settings inherit from the
// enclosing scope; nested routes extend the path prefix.
type RouteSpec struct {
	Path                 string `mapstructure:"path" validate:"required,startswith=/,excludesall=*{}"`
	kvgate.RouteSettings `mapstructure:",squash"`

	// Enabled switches the lookup handler for this scope only. Nil means
	// enabled. A disabled scope still passes its settings to nested routes.
	Enabled *bool       `mapstructure:"enabled"`
	Routes  []RouteSpec `mapstructure:"routes" validate:"dive"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// IsProd reports whether the production log format should be used.
func (c *Config) IsProd() bool {
	return c.Env == "prod" || c.Env == "production"
}

// routeMetaChars are pattern syntax in the router; route paths are literal
// prefixes and may not contain them.
const routeMetaChars = "*{}"

// ResolveRoutes flattens the route tree into mountable routes, merging
// settings from the global store scope down to each route. With no routes
// declared the global scope is served at "/".
func (c *Config) ResolveRoutes() ([]kvgate.Route, error) {
	global := c.Store.RouteSettings
	if len(c.Routes) == 0 {
		return []kvgate.Route{{Pattern: "/", Config: kvgate.ResolveRoute(global)}}, nil
	}

	var routes []kvgate.Route
	seen := make(map[string]bool)

	var walk func(prefix string, scopes []kvgate.RouteSettings, specs []RouteSpec) error
	walk = func(prefix string, scopes []kvgate.RouteSettings, specs []RouteSpec) error {
		for _, spec := range specs {
			if strings.ContainsAny(spec.Path, routeMetaChars) {
				return fmt.Errorf("resolve routes: path %q contains one of %q", spec.Path, routeMetaChars)
			}
			pattern := path.Join(prefix, spec.Path)
			chain := append(scopes[:len(scopes):len(scopes)], spec.RouteSettings)

			if spec.Enabled == nil || *spec.Enabled {
				if seen[pattern] {
					return fmt.Errorf("resolve routes: duplicate route %s", pattern)
				}
				seen[pattern] = true
				routes = append(routes, kvgate.Route{Pattern: pattern, Config: kvgate.ResolveRoute(chain...)})
			}

			if err := walk(pattern, chain, spec.Routes); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk("/", []kvgate.RouteSettings{global}, c.Routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"port":            "server.port",
	"max-path-length": "server.max_path_length",
	"store-path":      "store.store_path",
	"content-type":    "store.content_type",
	"bucket":          "store.bucket",
	"lock-timeout":    "store.lock_timeout",
	"log-level":       "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("server.port", 5708)
	v.SetDefault("server.max_path_length", kvgate.DefaultMaxPathLength)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	// empty route settings inherit, then fall back to kvgate defaults
	v.SetDefault("store.store_path", "")
	v.SetDefault("store.content_type", "")
	v.SetDefault("store.bucket", "")
	v.SetDefault("store.lock_timeout", 100*time.Millisecond)
	v.SetDefault("store.max_value_size", 0) // 0 means no limit

	v.SetDefault("cors.enabled", false)

	// empty selects the env default: debug in dev, info in prod
	v.SetDefault("log.level", "")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables
	v.SetEnvPrefix("KVGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if _, err := cfg.ResolveRoutes(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
