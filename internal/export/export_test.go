package export

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
)

const exportCSV = `date,review,rating,platform,verified_purchase,review_length
2024-02-01,Helpful,5,Web,yes,7
bad-date,,2,Mobile,no,
,Unrated,,Web,,7
`

func loadSession(t *testing.T) *dataset.Session {
	t.Helper()
	s, err := dataset.Read(context.Background(), strings.NewReader(exportCSV), "export.csv", dataset.Options{})
	require.NoError(t, err)
	return s
}

func TestRecords(t *testing.T) {
	s := loadSession(t)
	recs := Records(s)

	require.Len(t, recs, 3)
	ids := map[string]bool{}
	for _, r := range recs {
		assert.Equal(t, s.ID(), r.SessionID)
		assert.NotEmpty(t, r.ReviewID)
		ids[r.ReviewID] = true
	}
	assert.Len(t, ids, 3, "review IDs are unique")

	first := recs[0]
	require.NotNil(t, first.Rating)
	assert.Equal(t, 5.0, *first.Rating)
	require.NotNil(t, first.Date)
	assert.Equal(t, "2024-02-01T00:00:00Z", *first.Date)
	require.NotNil(t, first.Sentiment)
	assert.Equal(t, "positive", *first.Sentiment)
	assert.Equal(t, "true", *first.VerifiedPurchase)

	second := recs[1]
	assert.Nil(t, second.Review)
	assert.Nil(t, second.Date)
	assert.Equal(t, "bad-date", second.RawDate)
	assert.Nil(t, second.ReviewLength)

	third := recs[2]
	assert.Nil(t, third.Rating)
	assert.Nil(t, third.Sentiment)
}

func TestWriteJSONL(t *testing.T) {
	s := loadSession(t)
	path := filepath.Join(t.TempDir(), "reviews.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	n, err := WriteJSONL(path, s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var obj map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &obj))
		lines = append(lines, obj)
	}
	require.NoError(t, scanner.Err())
	require.Len(t, lines, 3)
	assert.Equal(t, "positive", lines[0]["sentiment"])
	assert.Equal(t, "negative", lines[1]["sentiment"])
	assert.Nil(t, lines[2]["sentiment"])

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestWriteJSONLBadDir(t *testing.T) {
	_, err := WriteJSONL(filepath.Join(t.TempDir(), "missing", "reviews.jsonl"), loadSession(t))
	assert.Error(t, err)
}

func TestWriteSQLite(t *testing.T) {
	s := loadSession(t)
	path := filepath.Join(t.TempDir(), "reviews.db")

	n, err := WriteSQLite(context.Background(), path, s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// A second export replaces the first rather than appending.
	_, err = WriteSQLite(context.Background(), path, s)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reviews").Scan(&count))
	assert.Equal(t, 3, count)

	var unrated int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reviews WHERE sentiment IS NULL").Scan(&unrated))
	assert.Equal(t, 1, unrated)

	var platform string
	require.NoError(t, db.QueryRow("SELECT platform FROM reviews WHERE sentiment = 'negative'").Scan(&platform))
	assert.Equal(t, "Mobile", platform)

	var sessionID string
	require.NoError(t, db.QueryRow("SELECT DISTINCT session_id FROM reviews").Scan(&sessionID))
	assert.Equal(t, s.ID(), sessionID)
}
