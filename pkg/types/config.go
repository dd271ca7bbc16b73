package types

import "errors"

// Review length sources.
const (
	LengthFromColumn = "column"
	LengthFromChars  = "chars"
	LengthFromWords  = "words"
)

// Log formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds the settings shared by the CLI and the dashboard server.
type Config struct {
	Input              string `json:"input" yaml:"input" mapstructure:"input"`
	ModelPath          string `json:"model_path" yaml:"model_path" mapstructure:"model_path"`
	DataDir            string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	FoldCase           bool   `json:"fold_case" yaml:"fold_case" mapstructure:"fold_case"`
	ReviewLengthSource string `json:"review_length_source" yaml:"review_length_source" mapstructure:"review_length_source"`
	TopKeywords        int    `json:"top_keywords" yaml:"top_keywords" mapstructure:"top_keywords"`
	ListenAddr         string `json:"listen_addr" yaml:"listen_addr" mapstructure:"listen_addr"`
	LogLevel           string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	LogFormat          string `json:"log_format" yaml:"log_format" mapstructure:"log_format"`
}

// Config defaults.
const (
	DefaultTopKeywords = 50
	DefaultListenAddr  = ":8081"
	DefaultLogLevel    = "info"
)

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() Config {
	return Config{
		FoldCase:           true,
		ReviewLengthSource: LengthFromColumn,
		TopKeywords:        DefaultTopKeywords,
		ListenAddr:         DefaultListenAddr,
		LogLevel:           DefaultLogLevel,
		LogFormat:          LogFormatConsole,
	}
}

// Config validation errors.
var (
	ErrLengthSourceUnknown = errors.New("unknown review_length_source")
	ErrTopKeywordsInvalid  = errors.New("top_keywords must be positive")
	ErrLogLevelUnknown     = errors.New("unknown log_level")
	ErrLogFormatUnknown    = errors.New("unknown log_format")
)

var knownLengthSources = map[string]bool{
	LengthFromColumn: true,
	LengthFromChars:  true,
	LengthFromWords:  true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var knownLogFormats = map[string]bool{
	LogFormatConsole: true,
	LogFormatJSON:    true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if !knownLengthSources[c.ReviewLengthSource] {
		return ErrLengthSourceUnknown
	}
	if c.TopKeywords <= 0 {
		return ErrTopKeywordsInvalid
	}
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	if !knownLogFormats[c.LogFormat] {
		return ErrLogFormatUnknown
	}
	return nil
}
