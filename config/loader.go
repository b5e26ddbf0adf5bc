package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/babelink/logger"
)

// FileSystem is what LoadConfig needs from the host, swapped out in tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
	UserConfigDir() (string, error)
}

// OSFileSystem is the real FileSystem.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) LoadEnv(path string) error { return godotenv.Load(path) }

func (OSFileSystem) UserConfigDir() (string, error) { return os.UserConfigDir() }

// LoaderConfig collects the LoaderOptions.
type LoaderConfig struct {
	FileSystem FileSystem
	// ConfigFile and EnvFile skip the search when set.
	ConfigFile string
	EnvFile    string
	// EnvPrefix defaults to the upper-cased service name.
	EnvPrefix string
	// Defaults are keyed by dotted path and sit below every source.
	Defaults map[string]any
}

// LoaderOption customizes LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem replaces the OS file system.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile reads path instead of searching for config.yml.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile reads path instead of searching for .env.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix sets the prefix of overriding environment variables.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithDefaults sets values used when no source provides a key.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) { lc.Defaults = defaults }
}

// sources are the files one load reads. Either may be empty.
type sources struct {
	configFile string
	envFile    string
}

// locate resolves the files to read: explicit paths as given, otherwise the
// first existing candidate in order of the service's cmd directory (a
// development checkout), the working directory and the per-user config
// directory (an installed desktop host).
func locate(fs FileSystem, service string, lc LoaderConfig) sources {
	var userDir string
	if dir, err := fs.UserConfigDir(); err == nil && dir != "" {
		userDir = filepath.Join(dir, service)
	}
	candidates := func(local ...string) string {
		if userDir != "" {
			local = append(local, filepath.Join(userDir, filepath.Base(local[len(local)-1])))
		}
		for _, p := range local {
			if fs.Exists(p) {
				return p
			}
		}
		return ""
	}

	src := sources{configFile: lc.ConfigFile, envFile: lc.EnvFile}
	if src.configFile == "" {
		src.configFile = candidates("./cmd/"+service+"/config.yml", "./config/config.yml", "./config.yml")
	}
	if src.envFile == "" {
		src.envFile = candidates("./cmd/"+service+"/.env", ".env."+service, ".env")
	}
	return src
}

// LoadConfig fills cfg from, in rising precedence, the defaults, config.yml,
// and PREFIX_* environment variables (a .env file only seeds the process
// environment). A missing config file is not an error; an unreadable one is.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: OSFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.EnvPrefix == "" {
		lc.EnvPrefix = strings.ToUpper(strings.ReplaceAll(serviceName, "-", "_"))
	}
	src := locate(lc.FileSystem, serviceName, lc)
	log := logger.WithComponent("config")

	v := viper.New()
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	switch {
	case src.configFile == "":
	case !lc.FileSystem.Exists(src.configFile):
		log.Warn("config file not found, using defaults", logger.Fields(logger.FieldPath, src.configFile))
	default:
		v.SetConfigFile(src.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", src.configFile, err)
		}
		log.Debug("config file loaded", logger.Fields(logger.FieldPath, src.configFile))
	}

	if src.envFile != "" && lc.FileSystem.Exists(src.envFile) {
		if err := lc.FileSystem.LoadEnv(src.envFile); err != nil {
			log.Warn("env file not loaded", logger.MergeWithError(logger.Fields(logger.FieldPath, src.envFile), err))
		}
	}

	bindPrefixedEnvVars(v, lc.EnvPrefix, os.Environ())

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// bindPrefixedEnvVars sets each PREFIX_* variable under every key it may
// address, since an underscore either separates sections or belongs to a
// key.
func bindPrefixedEnvVars(v *viper.Viper, prefix string, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		rest, ok := strings.CutPrefix(name, prefix+"_")
		if !ok || rest == "" {
			continue
		}
		for _, key := range envKeys(rest) {
			v.Set(key, value)
		}
	}
}

// envKeys lists the config keys an environment variable name may address:
//
//	SERVER_PORT         -> server_port, server.port
//	TRANSLATION_API_KEY -> translation_api_key, translation.api.key, translation.api_key
func envKeys(name string) []string {
	flat := strings.ToLower(name)
	parts := strings.Split(flat, "_")

	keys := []string{flat}
	seen := map[string]bool{flat: true}
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	add(strings.Join(parts, "."))
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return keys
}
