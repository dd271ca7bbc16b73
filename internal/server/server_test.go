package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reviewdash/internal/analysis"
	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// No location or version columns: views 7 and 9 fail, the rest work.
const serverCSV = `date,review,rating,platform,verified_purchase,review_length
2024-01-05,fast helpful answers,5,Web,Yes,20
2024-02-19,slow answers,2,Mobile,No,12
2024-02-21,okay I guess,3,Web,Yes,12
`

func newTestServer(t *testing.T, artifact *model.Artifact) *Server {
	t.Helper()
	s, err := dataset.Read(context.Background(), strings.NewReader(serverCSV), "server.csv", dataset.Options{})
	require.NoError(t, err)
	return New(s, artifact, analysis.Options{FoldCase: true, TopKeywords: 5}, zap.NewNop())
}

func get(t *testing.T, srv *Server, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &model.Artifact{Path: "model.pkl", Size: 10})

	var body map[string]any
	code := get(t, srv, "/health", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(3), body["rows"])
	m, ok := body["model"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "model.pkl", m["path"])
}

func TestHealthWithoutModel(t *testing.T) {
	var body map[string]any
	get(t, newTestServer(t, nil), "/health", &body)
	assert.Nil(t, body["model"])
}

func TestDataset(t *testing.T) {
	srv := newTestServer(t, nil)

	var body datasetResponse
	code := get(t, srv, "/dataset", &body)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "server.csv", body.Source)
	assert.Equal(t, 3, body.Rows)
	assert.Contains(t, body.Columns, "review")
	assert.Equal(t, map[string]int{"positive": 1, "negative": 1, "neutral": 1}, body.SentimentCounts)
}

func TestViewsMenu(t *testing.T) {
	srv := newTestServer(t, nil)

	var entries []struct {
		ID        int      `json:"id"`
		Slug      string   `json:"slug"`
		Label     string   `json:"label"`
		Available bool     `json:"available"`
		Missing   []string `json:"missing"`
	}
	code := get(t, srv, "/views", &entries)

	assert.Equal(t, http.StatusOK, code)
	require.Len(t, entries, 10)
	assert.Equal(t, "1. Overall Sentiment Distribution", entries[0].Label)
	assert.True(t, entries[0].Available)
	assert.False(t, entries[6].Available)
	assert.Equal(t, []string{"location"}, entries[6].Missing)
	assert.False(t, entries[8].Available)
}

func TestViewStatuses(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"by number", "/views/1", http.StatusOK},
		{"by slug", "/views/sentiment-by-platform", http.StatusOK},
		{"slug is case insensitive", "/views/Sentiment-Trend", http.StatusOK},
		{"keywords with sentiment", "/views/3?sentiment=negative", http.StatusOK},
		{"keywords with top", "/views/3?top=1", http.StatusOK},
		{"unknown view number", "/views/11", http.StatusNotFound},
		{"unknown view slug", "/views/nope", http.StatusNotFound},
		{"bad top", "/views/3?top=many", http.StatusBadRequest},
		{"negative top", "/views/10?top=-1", http.StatusBadRequest},
		{"unknown sentiment", "/views/3?sentiment=angry", http.StatusBadRequest},
		{"missing column", "/views/7", http.StatusUnprocessableEntity},
		{"other views still work", "/views/8", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]any
			assert.Equal(t, tt.want, get(t, srv, tt.path, &body))
		})
	}
}

func TestViewMissingColumnBody(t *testing.T) {
	var body errorResponse
	code := get(t, newTestServer(t, nil), "/views/sentiment-by-version", &body)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "version", body.Column)
	assert.Equal(t, "sentiment-by-version", body.View)
	assert.Contains(t, body.Error, "missing column")
}

func TestViewKeywordsPayload(t *testing.T) {
	var body struct {
		View    analysis.View `json:"view"`
		Payload struct {
			Choices []string `json:"choices"`
			Corpus  struct {
				Label    string             `json:"label"`
				Keywords []analysis.Keyword `json:"keywords"`
			} `json:"corpus"`
		} `json:"payload"`
	}
	code := get(t, newTestServer(t, nil), "/views/3?sentiment=negative&top=1", &body)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, body.View.ID)
	assert.Equal(t, []string{"positive", "negative", "neutral"}, body.Payload.Choices)
	assert.Equal(t, "negative", body.Payload.Corpus.Label)
	assert.Len(t, body.Payload.Corpus.Keywords, 1)
}

func TestConcurrentRequests(t *testing.T) {
	srv := newTestServer(t, nil)
	h := srv.Handler()

	var wg sync.WaitGroup
	codes := make([]int, 40)
	for i := range codes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/"+strconv.Itoa(i%10+1), nil))
			codes[i] = rec.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if v := i%10 + 1; v == 7 || v == 9 {
			assert.Equal(t, http.StatusUnprocessableEntity, code, "view %d", v)
		} else {
			assert.Equal(t, http.StatusOK, code, "view %d", v)
		}
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, nil)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	client := &http.Client{Timeout: 2 * time.Second}
	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get("http://" + ln.Addr().String() + "/health")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunBadAddress(t *testing.T) {
	err := newTestServer(t, nil).Run(context.Background(), "not-an-address")
	assert.ErrorContains(t, err, "listen")
}
