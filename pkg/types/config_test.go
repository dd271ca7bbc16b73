package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults are valid", func(c *Config) {}, nil},
		{"words length source", func(c *Config) { c.ReviewLengthSource = LengthFromWords }, nil},
		{"unknown length source", func(c *Config) { c.ReviewLengthSource = "tokens" }, ErrLengthSourceUnknown},
		{"zero keywords", func(c *Config) { c.TopKeywords = 0 }, ErrTopKeywordsInvalid},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }, ErrLogLevelUnknown},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, ErrLogFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestColumnErrorUnwraps(t *testing.T) {
	var err error = &ColumnError{Column: ColumnLocation, View: "sentiment-by-location"}
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Equal(t, `view sentiment-by-location: missing column "location"`, err.Error())

	var ce *ColumnError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, ColumnLocation, ce.Column)
}

func TestSchemaErrorUnwraps(t *testing.T) {
	err := &SchemaError{Column: ColumnRating, Row: 4, Value: "five", Want: "a number"}
	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, `column "rating" row 4: "five" is not a number`, err.Error())
}
