package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "REVIEWDASH"
	dotEnv    = ".env"
)

// configFileHeader precedes the marshalled defaults in a new config.yaml.
const configFileHeader = `# reviewdash configuration
# Every key can be overridden by a REVIEWDASH_<KEY> environment variable.
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. Environment variables, including those in an
// optional .env file in the working directory, override the file.
func loadConfig(configDir string) (types.Config, error) {
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, sysError(fmt.Errorf("ensure default config: %w", err))
	}
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return types.Config{}, userError(fmt.Errorf("load %s: %w", dotEnv, err))
	}

	v := viper.New()
	setDefaults(v, types.DefaultConfig())
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, userError(fmt.Errorf("read config: %w", err))
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, userError(fmt.Errorf("decode config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, userError(fmt.Errorf("invalid config: %w", err))
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("input", d.Input)
	v.SetDefault("model_path", d.ModelPath)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("fold_case", d.FoldCase)
	v.SetDefault("review_length_source", d.ReviewLengthSource)
	v.SetDefault("top_keywords", d.TopKeywords)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// ensureDefaultConfigFile creates configDir and a default config.yaml if the
// file does not exist. An existing file is left untouched.
func ensureDefaultConfigFile(configDir string) error {
	_, err := writeConfigIfMissing(configDir, types.DefaultConfig())
	return err
}

// writeConfigIfMissing writes cfg as config.yaml and reports whether a file
// was written.
func writeConfigIfMissing(configDir string, cfg types.Config) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(configFileHeader), data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
