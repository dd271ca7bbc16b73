package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

const cliCSV = `date,review,rating,platform,verified_purchase,review_length
2024-01-05,fast helpful answers,5,Web,Yes,20
2024-02-19,slow answers,2,Mobile,No,12
2024-02-21,okay I guess,3,Web,Yes,12
2024-02-22,no rating here,,Web,No,14
`

type env struct {
	configDir string
	dataDir   string
	input     string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	input := filepath.Join(dir, "reviews.csv")
	require.NoError(t, os.WriteFile(input, []byte(cliCSV), 0o644))
	return env{
		configDir: filepath.Join(dir, "config"),
		dataDir:   filepath.Join(dir, "data"),
		input:     input,
	}
}

// run executes the root command with the environment's directories and
// returns stdout and the command error.
func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newEnv(t).run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reviewdash v"+Version)
	assert.Contains(t, out, modulePath)
}

func TestInitWritesConfig(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "reviewdash initialized")

	data, err := os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Contains(t, string(data), "fold_case: true")
	assert.Contains(t, string(data), "top_keywords: 50")
	assert.DirExists(t, e.dataDir)

	// A second run leaves an edited file alone.
	edited := []byte("top_keywords: 7\n")
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), edited, 0o644))
	_, err = e.run(t, "init")
	require.NoError(t, err)
	data, err = os.ReadFile(filepath.Join(e.configDir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, edited, data)
}

func TestViewsList(t *testing.T) {
	out, err := newEnv(t).run(t, "views")
	require.NoError(t, err)
	assert.Contains(t, out, "overall-sentiment")
	assert.Contains(t, out, "negative-themes")

	out, err = newEnv(t).run(t, "--json", "views")
	require.NoError(t, err)
	var views []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	assert.Len(t, views, 10)
}

func TestViewJSON(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "--json", "--input", e.input, "view", "1")
	require.NoError(t, err)

	var res struct {
		View struct {
			Slug string `json:"slug"`
		} `json:"view"`
		Payload struct {
			Total  int `json:"total"`
			Shares []struct {
				Sentiment string `json:"sentiment"`
				Count     int    `json:"count"`
			} `json:"shares"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "overall-sentiment", res.View.Slug)
	assert.Equal(t, 3, res.Payload.Total)
	assert.Len(t, res.Payload.Shares, 3)
}

func TestViewText(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "--input", e.input, "view", "keywords-per-sentiment", "--sentiment", "negative", "--top", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Keywords Associated with Each Sentiment")
	assert.Contains(t, out, "negative (1 reviews)")
}

func TestViewErrors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		args []string
		code int
		is   error
	}{
		{"missing column", []string{"--input", e.input, "view", "7"}, exitUserError, types.ErrMissingColumn},
		{"unknown view", []string{"--input", e.input, "view", "42"}, exitUserError, types.ErrUnknownView},
		{"unknown sentiment", []string{"--input", e.input, "view", "3", "--sentiment", "angry"}, exitUserError, types.ErrUnknownSentiment},
		{"no input", []string{"view", "1"}, exitUserError, errNoInput},
		{"missing input file", []string{"--input", filepath.Join(t.TempDir(), "nope.csv"), "view", "1"}, exitSysError, os.ErrNotExist},
		{"no view argument", []string{"--input", e.input, "view"}, exitUserError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, exitCode(err))
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestInfoJSON(t *testing.T) {
	e := newEnv(t)
	modelPath := filepath.Join(t.TempDir(), "model.pkl")
	require.NoError(t, os.WriteFile(modelPath, []byte("weights"), 0o644))
	t.Setenv("REVIEWDASH_MODEL_PATH", modelPath)

	out, err := e.run(t, "--json", "--input", e.input, "info")
	require.NoError(t, err)

	var info infoOutput
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 4, info.Rows)
	assert.Equal(t, e.input, info.Source)
	assert.Equal(t, 1, info.SentimentCounts[types.UnratedLabel])
	require.NotNil(t, info.Model)
	assert.Equal(t, int64(7), info.Model.Size)
}

func TestInfoMissingModel(t *testing.T) {
	e := newEnv(t)
	t.Setenv("REVIEWDASH_MODEL_PATH", filepath.Join(t.TempDir(), "missing.pkl"))

	_, err := e.run(t, "--input", e.input, "info")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestInputFromConfigFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	cfg := "input: " + e.input + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, configFileExt), []byte(cfg), 0o644))

	out, err := e.run(t, "info")
	require.NoError(t, err)
	assert.Contains(t, out, "rows:    4")
	assert.Contains(t, out, "model:   none")
}

func TestInvalidConfigFromEnv(t *testing.T) {
	e := newEnv(t)
	t.Setenv("REVIEWDASH_TOP_KEYWORDS", "0")

	_, err := e.run(t, "--input", e.input, "view", "1")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
	assert.ErrorIs(t, err, types.ErrTopKeywordsInvalid)
}

func TestExport(t *testing.T) {
	e := newEnv(t)

	out, err := e.run(t, "--input", e.input, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "exported 4 reviews")
	assert.FileExists(t, filepath.Join(e.dataDir, "reviews.jsonl"))

	dbPath := filepath.Join(t.TempDir(), "out.db")
	out, err = e.run(t, "--json", "--input", e.input, "export", "--format", "sqlite", "--out", dbPath)
	require.NoError(t, err)
	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, float64(4), res["rows"])
	assert.FileExists(t, dbPath)

	_, err = e.run(t, "--input", e.input, "export", "--format", "parquet")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(base))
	assert.Equal(t, exitUserError, exitCode(userError(base)))
	assert.Equal(t, exitSysError, exitCode(sysError(base)))
	assert.Equal(t, exitUserError, exitCode(classify(&types.ColumnError{Column: "rating"})))
	assert.Equal(t, exitSysError, exitCode(classify(base)))
	assert.ErrorIs(t, sysError(base), base)
}
